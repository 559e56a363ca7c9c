package service

import (
	"context"
	"fmt"
	"time"

	"servicapp/internal/models"
	"servicapp/internal/repository"
	"servicapp/internal/storage"
)

type ProjectService interface {
	ListForUser(ctx context.Context, user *models.User) ([]models.ActiveProject, error)
	Get(ctx context.Context, projectID, userID string) (*models.ActiveProject, error)
	// AdvanceStatus moves the project forward along
	// assigned → started → in_progress → completed. The paid state is
	// reserved for the review closure.
	AdvanceStatus(ctx context.Context, projectID, workerID string, to models.ProjectStatus) (*models.ActiveProject, error)
	UploadStagePhoto(ctx context.Context, projectID, workerID string, stage int, dataURI string) (*models.ActiveProject, error)
	SetProgress(ctx context.Context, projectID, workerID string, percentage int) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	storage     storage.Storage
}

func NewProjectService(projectRepo repository.ProjectRepository, store storage.Storage) ProjectService {
	return &projectService{projectRepo: projectRepo, storage: store}
}

func (s *projectService) ListForUser(ctx context.Context, user *models.User) ([]models.ActiveProject, error) {
	if user.UserType == models.UserTypeWorker {
		return s.projectRepo.GetByWorkerID(ctx, user.UserID)
	}
	return s.projectRepo.GetByContractorID(ctx, user.UserID)
}

func (s *projectService) Get(ctx context.Context, projectID, userID string) (*models.ActiveProject, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.WorkerID != userID && project.ContractorID != userID {
		return nil, ErrForbidden
	}

	return project, nil
}

func (s *projectService) AdvanceStatus(ctx context.Context, projectID, workerID string, to models.ProjectStatus) (*models.ActiveProject, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.WorkerID != workerID {
		return nil, ErrForbidden
	}

	if to == models.ProjectPaid {
		return nil, fmt.Errorf("el estado 'paid' se asigna al calificar el proyecto")
	}

	if !project.Status.CanAdvanceTo(to) {
		return nil, fmt.Errorf("no se puede pasar de %s a %s", project.Status, to)
	}

	if err := s.projectRepo.UpdateStatus(ctx, projectID, project.Status, to); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, projectID)
}

// UploadStagePhoto stores the evidence photo for one of the three fixed
// milestones. Stages carry no ordering constraint: a stage 3 photo may
// arrive before stage 1 and is kept as-is.
func (s *projectService) UploadStagePhoto(ctx context.Context, projectID, workerID string, stage int, dataURI string) (*models.ActiveProject, error) {
	if stage < 1 || stage > models.NumStages {
		return nil, fmt.Errorf("etapa inválida: %d", stage)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.WorkerID != workerID {
		return nil, ErrForbidden
	}

	if project.Status == models.ProjectPaid {
		return nil, fmt.Errorf("el proyecto ya está cerrado")
	}

	prefix := fmt.Sprintf("projects/%s/stages", projectID)
	_, photoURL, err := s.storage.UploadDataURI(ctx, prefix, dataURI)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.SetStagePhoto(ctx, projectID, stage, photoURL, time.Now()); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, projectID)
}

// SetProgress updates the presentational progress figure. It is stored
// independently of the stage photos and is never derived from them.
func (s *projectService) SetProgress(ctx context.Context, projectID, workerID string, percentage int) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("porcentaje inválido: %d", percentage)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	if project.WorkerID != workerID {
		return ErrForbidden
	}

	return s.projectRepo.UpdateProgress(ctx, projectID, percentage)
}
