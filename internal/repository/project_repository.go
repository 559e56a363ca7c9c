package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"servicapp/internal/models"
)

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetByID(ctx context.Context, projectID string) (*models.ActiveProject, error) {
	query := `SELECT * FROM active_projects WHERE project_id = $1`

	var project models.ActiveProject
	err := r.db.GetContext(ctx, &project, query, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("proyecto %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener el proyecto: %w", err)
	}

	project.Status = models.NormalizeProjectStatus(string(project.Status))
	return &project, nil
}

// GetByWorkerID lists the worker's projects, active ones first. A
// project leaves the active view once it is paid but stays queryable
// as history.
func (r *projectRepository) GetByWorkerID(ctx context.Context, workerID string) ([]models.ActiveProject, error) {
	query := `
		SELECT * FROM active_projects
		WHERE worker_id = $1
		ORDER BY (LOWER(status) = 'paid'), accepted_at DESC
	`

	var projects []models.ActiveProject
	err := r.db.SelectContext(ctx, &projects, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener los proyectos del trabajador: %w", err)
	}

	normalizeProjectStatuses(projects)
	return projects, nil
}

func (r *projectRepository) GetByContractorID(ctx context.Context, contractorID string) ([]models.ActiveProject, error) {
	query := `
		SELECT * FROM active_projects
		WHERE contractor_id = $1
		ORDER BY (LOWER(status) = 'paid'), accepted_at DESC
	`

	var projects []models.ActiveProject
	err := r.db.SelectContext(ctx, &projects, query, contractorID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener los proyectos del contratista: %w", err)
	}

	normalizeProjectStatuses(projects)
	return projects, nil
}

// UpdateStatus advances a project from one status to another. The WHERE
// clause re-checks the current status so a stale caller loses the race
// instead of rewinding the project.
func (r *projectRepository) UpdateStatus(ctx context.Context, projectID string, from, to models.ProjectStatus) error {
	query := `
		UPDATE active_projects
		SET status = $1,
		    started_at = CASE WHEN $1 = 'started' THEN CURRENT_TIMESTAMP ELSE started_at END,
		    completed_at = CASE WHEN $1 = 'completed' THEN CURRENT_TIMESTAMP ELSE completed_at END
		WHERE project_id = $2 AND LOWER(status) = $3
	`

	result, err := r.db.ExecContext(ctx, query, string(to), projectID, string(from))
	if err != nil {
		return fmt.Errorf("error al actualizar el estado del proyecto: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas actualizadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("proyecto %s ya no está en estado %s: %w", projectID, from, ErrNotFound)
	}

	return nil
}

// SetStagePhoto records the photo for one stage. Stages may be filled
// in any order; each write touches only its own pair of columns.
func (r *projectRepository) SetStagePhoto(ctx context.Context, projectID string, stage int, photoURL string, uploadedAt time.Time) error {
	if stage < 1 || stage > models.NumStages {
		return fmt.Errorf("etapa inválida: %d", stage)
	}

	query := fmt.Sprintf(`
		UPDATE active_projects
		SET stage_%d_photo = $1, stage_%d_uploaded_at = $2
		WHERE project_id = $3
	`, stage, stage)

	result, err := r.db.ExecContext(ctx, query, photoURL, uploadedAt, projectID)
	if err != nil {
		return fmt.Errorf("error al guardar la foto de la etapa %d: %w", stage, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas actualizadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("proyecto %s: %w", projectID, ErrNotFound)
	}

	return nil
}

func (r *projectRepository) UpdateProgress(ctx context.Context, projectID string, percentage int) error {
	query := `UPDATE active_projects SET progress_percentage = $1 WHERE project_id = $2`

	result, err := r.db.ExecContext(ctx, query, percentage, projectID)
	if err != nil {
		return fmt.Errorf("error al actualizar el avance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas actualizadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("proyecto %s: %w", projectID, ErrNotFound)
	}

	return nil
}

func normalizeProjectStatuses(projects []models.ActiveProject) {
	for i := range projects {
		projects[i].Status = models.NormalizeProjectStatus(string(projects[i].Status))
	}
}
