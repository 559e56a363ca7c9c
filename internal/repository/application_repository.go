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

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.PostApplication) error {
	if app.ApplicationID == "" {
		app.ApplicationID = uuid.New().String()
	}
	app.Status = models.ApplicationPending
	app.AppliedAt = time.Now()

	query := `
		INSERT INTO post_applications
		(application_id, post_id, worker_id, message, proposed_cost, estimated_completion_time, status, applied_at)
		VALUES
		(:application_id, :post_id, :worker_id, :message, :proposed_cost, :estimated_completion_time, :status, :applied_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		return fmt.Errorf("error al crear la postulación: %w", err)
	}

	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, applicationID string) (*models.PostApplication, error) {
	query := `
		SELECT a.*, u.name AS worker_name, u.rating AS worker_rating
		FROM post_applications a
		JOIN users u ON u.user_id = a.worker_id
		WHERE a.application_id = $1
	`

	var app models.PostApplication
	err := r.db.GetContext(ctx, &app, query, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("postulación %s: %w", applicationID, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener la postulación: %w", err)
	}

	app.Status = models.NormalizeApplicationStatus(string(app.Status))
	return &app, nil
}

func (r *applicationRepository) ExistsForWorker(ctx context.Context, postID, workerID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM post_applications
		WHERE post_id = $1 AND worker_id = $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, postID, workerID)
	if err != nil {
		return false, fmt.Errorf("error al verificar la postulación existente: %w", err)
	}

	return count > 0, nil
}

// GetByPostID lists a post's applicants in display order: accepted
// first, then pending by worker rating descending with the most recent
// application breaking ties, rejected last.
func (r *applicationRepository) GetByPostID(ctx context.Context, postID string) ([]models.PostApplication, error) {
	query := `
		SELECT a.*, u.name AS worker_name, u.rating AS worker_rating
		FROM post_applications a
		JOIN users u ON u.user_id = a.worker_id
		WHERE a.post_id = $1
		ORDER BY
			CASE LOWER(a.status)
				WHEN 'accepted' THEN 0
				WHEN 'pending' THEN 1
				ELSE 2
			END,
			u.rating DESC,
			a.applied_at DESC
	`

	var apps []models.PostApplication
	err := r.db.SelectContext(ctx, &apps, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las postulaciones: %w", err)
	}

	for i := range apps {
		apps[i].Status = models.NormalizeApplicationStatus(string(apps[i].Status))
	}
	return apps, nil
}

func (r *applicationRepository) GetByWorkerID(ctx context.Context, workerID string) ([]models.PostApplication, error) {
	query := `
		SELECT a.*, u.name AS worker_name, u.rating AS worker_rating
		FROM post_applications a
		JOIN users u ON u.user_id = a.worker_id
		WHERE a.worker_id = $1
		ORDER BY a.applied_at DESC
	`

	var apps []models.PostApplication
	err := r.db.SelectContext(ctx, &apps, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las postulaciones del trabajador: %w", err)
	}

	for i := range apps {
		apps[i].Status = models.NormalizeApplicationStatus(string(apps[i].Status))
	}
	return apps, nil
}

// Accept resolves an application in a single transaction: the target
// application becomes accepted, every sibling still pending on the same
// post becomes rejected, an active project is created, and the post
// moves to in_progress with the worker assigned. Both rows are locked
// up front so two concurrent acceptances on the same post cannot both
// succeed.
func (r *applicationRepository) Accept(ctx context.Context, applicationID string) (*AcceptResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer tx.Rollback()

	var app models.PostApplication
	err = tx.GetContext(ctx, &app, `SELECT * FROM post_applications WHERE application_id = $1 FOR UPDATE`, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("postulación %s: %w", applicationID, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener la postulación: %w", err)
	}

	if models.NormalizeApplicationStatus(string(app.Status)) != models.ApplicationPending {
		return nil, ErrApplicationResolved
	}

	var post models.Post
	err = tx.GetContext(ctx, &post, `SELECT * FROM posts WHERE post_id = $1 FOR UPDATE`, app.PostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("publicación %s: %w", app.PostID, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener la publicación: %w", err)
	}

	if models.NormalizePostStatus(string(post.Status)) != models.PostOpen {
		return nil, ErrPostNotOpen
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE post_applications SET status = 'accepted' WHERE application_id = $1`,
		applicationID)
	if err != nil {
		return nil, fmt.Errorf("error al aceptar la postulación: %w", err)
	}

	var rejected []models.PostApplication
	err = tx.SelectContext(ctx, &rejected, `
		UPDATE post_applications SET status = 'rejected'
		WHERE post_id = $1 AND application_id <> $2 AND LOWER(status) = 'pending'
		RETURNING *
	`, app.PostID, applicationID)
	if err != nil {
		return nil, fmt.Errorf("error al rechazar las postulaciones restantes: %w", err)
	}

	now := time.Now()
	project := models.ActiveProject{
		ProjectID:     uuid.New().String(),
		PostID:        app.PostID,
		ContractorID:  post.ContractorID,
		WorkerID:      app.WorkerID,
		ApplicationID: app.ApplicationID,
		Status:        models.ProjectAssigned,
		AcceptedAt:    now,
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO active_projects
		(project_id, post_id, contractor_id, worker_id, application_id, status, progress_percentage, accepted_at)
		VALUES
		(:project_id, :post_id, :contractor_id, :worker_id, :application_id, :status, :progress_percentage, :accepted_at)
	`, project)
	if err != nil {
		return nil, fmt.Errorf("error al crear el proyecto: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE posts SET status = 'in_progress', assigned_worker_id = $1 WHERE post_id = $2`,
		app.WorkerID, app.PostID)
	if err != nil {
		return nil, fmt.Errorf("error al actualizar la publicación: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error al confirmar la transacción: %w", err)
	}

	app.Status = models.ApplicationAccepted
	post.Status = models.PostInProgress
	post.AssignedWorkerID = &app.WorkerID
	for i := range rejected {
		rejected[i].Status = models.ApplicationRejected
	}

	return &AcceptResult{
		Application: app,
		Post:        post,
		Project:     project,
		Rejected:    rejected,
	}, nil
}

// Reject resolves a single application without touching the post.
func (r *applicationRepository) Reject(ctx context.Context, applicationID string) (*models.PostApplication, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer tx.Rollback()

	var app models.PostApplication
	err = tx.GetContext(ctx, &app, `SELECT * FROM post_applications WHERE application_id = $1 FOR UPDATE`, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("postulación %s: %w", applicationID, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener la postulación: %w", err)
	}

	if models.NormalizeApplicationStatus(string(app.Status)) != models.ApplicationPending {
		return nil, ErrApplicationResolved
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE post_applications SET status = 'rejected' WHERE application_id = $1`,
		applicationID)
	if err != nil {
		return nil, fmt.Errorf("error al rechazar la postulación: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error al confirmar la transacción: %w", err)
	}

	app.Status = models.ApplicationRejected
	return &app, nil
}
