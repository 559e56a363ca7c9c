package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"servicapp/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.Status = models.PostOpen
	post.CreatedAt = time.Now()

	query := `
		INSERT INTO posts
		(post_id, contractor_id, title, description, specialty, location, status, budget_min, budget_max, created_at)
		VALUES
		(:post_id, :contractor_id, :title, :description, :specialty, :location, :status, :budget_min, :budget_max, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("error al crear la publicación: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("publicación %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener la publicación: %w", err)
	}

	post.Status = models.NormalizePostStatus(string(post.Status))
	return &post, nil
}

func (r *postRepository) GetByContractorID(ctx context.Context, contractorID string) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE contractor_id = $1
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las publicaciones del contratista: %w", err)
	}

	normalizePostStatuses(posts)
	return posts, nil
}

// GetOpenPosts returns every post still collecting applications. The
// legacy store wrote 'Pending', 'open' and '' for the same state, so the
// query matches anything that is not a later stage.
func (r *postRepository) GetOpenPosts(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE LOWER(COALESCE(status, '')) NOT IN ('in_progress', 'completed')
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las publicaciones abiertas: %w", err)
	}

	normalizePostStatuses(posts)
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("error al eliminar la publicación: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas eliminadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("publicación %s: %w", postID, ErrNotFound)
	}

	return nil
}

func normalizePostStatuses(posts []models.Post) {
	for i := range posts {
		posts[i].Status = models.NormalizePostStatus(string(posts[i].Status))
	}
}
