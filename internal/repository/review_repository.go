package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"servicapp/internal/models"
)

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Finalize closes a completed project in one transaction: insert the
// review, recompute the worker's aggregate rating over every review on
// record, mark the project paid and the post completed. The aggregate
// is the arithmetic mean of all overall ratings, rounded to one
// decimal place.
func (r *reviewRepository) Finalize(ctx context.Context, review *models.WorkerReview) (float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.GetContext(ctx, &existing,
		`SELECT COUNT(*) FROM worker_reviews WHERE project_id = $1`, review.ProjectID)
	if err != nil {
		return 0, fmt.Errorf("error al verificar la calificación existente: %w", err)
	}
	if existing > 0 {
		return 0, ErrReviewExists
	}

	if review.ReviewID == "" {
		review.ReviewID = uuid.New().String()
	}
	review.CreatedAt = time.Now()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO worker_reviews
		(review_id, worker_id, contractor_id, post_id, project_id, rating, comment, punctuality_rating, quality_rating, price_rating, communication_rating, created_at)
		VALUES
		(:review_id, :worker_id, :contractor_id, :post_id, :project_id, :rating, :comment, :punctuality_rating, :quality_rating, :price_rating, :communication_rating, :created_at)
	`, review)
	if err != nil {
		return 0, fmt.Errorf("error al guardar la calificación: %w", err)
	}

	var ratings []int
	err = tx.SelectContext(ctx, &ratings,
		`SELECT rating FROM worker_reviews WHERE worker_id = $1`, review.WorkerID)
	if err != nil {
		return 0, fmt.Errorf("error al obtener las calificaciones del trabajador: %w", err)
	}

	newRating := models.AverageRating(ratings)

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET rating = $1 WHERE user_id = $2`, newRating, review.WorkerID)
	if err != nil {
		return 0, fmt.Errorf("error al actualizar la calificación del trabajador: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE active_projects SET status = 'paid' WHERE project_id = $1`, review.ProjectID)
	if err != nil {
		return 0, fmt.Errorf("error al cerrar el proyecto: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE posts SET status = 'completed', completed_at = CURRENT_TIMESTAMP WHERE post_id = $1`, review.PostID)
	if err != nil {
		return 0, fmt.Errorf("error al completar la publicación: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error al confirmar la transacción: %w", err)
	}

	return newRating, nil
}

func (r *reviewRepository) GetByWorkerID(ctx context.Context, workerID string) ([]models.WorkerReview, error) {
	query := `
		SELECT * FROM worker_reviews
		WHERE worker_id = $1
		ORDER BY created_at DESC
	`

	var reviews []models.WorkerReview
	err := r.db.SelectContext(ctx, &reviews, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las calificaciones: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) ExistsForProject(ctx context.Context, projectID string) (bool, error) {
	query := `SELECT COUNT(*) FROM worker_reviews WHERE project_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, projectID)
	if err != nil {
		return false, fmt.Errorf("error al verificar la calificación: %w", err)
	}

	return count > 0, nil
}
