package service

import (
	"context"
	"fmt"
	"strings"

	"servicapp/internal/events"
	"servicapp/internal/models"
	"servicapp/internal/repository"
)

type ApplyRequest struct {
	Message                 string  `json:"message"`
	ProposedCost            float64 `json:"proposedCost"`
	EstimatedCompletionTime string  `json:"estimatedCompletionTime"`
}

const (
	RespondAccept = "accept"
	RespondReject = "reject"
)

type ApplicationService interface {
	Apply(ctx context.Context, postID, workerID string, req ApplyRequest) (*models.PostApplication, error)
	ListForPost(ctx context.Context, postID, contractorID string) ([]models.PostApplication, error)
	ListForWorker(ctx context.Context, workerID string) ([]models.PostApplication, error)
	Respond(ctx context.Context, applicationID, contractorID, action string) (*repository.AcceptResult, error)
}

type applicationService struct {
	appRepo  repository.ApplicationRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	bus      *events.Bus
}

func NewApplicationService(appRepo repository.ApplicationRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, bus *events.Bus) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		postRepo: postRepo,
		userRepo: userRepo,
		bus:      bus,
	}
}

// Apply registers a worker's bid on a post. A worker gets exactly one
// application per post: a duplicate is refused before anything is
// written.
func (s *applicationService) Apply(ctx context.Context, postID, workerID string, req ApplyRequest) (*models.PostApplication, error) {
	exists, err := s.appRepo.ExistsForWorker(ctx, postID, workerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicateApplication
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostOpen {
		return nil, repository.ErrPostNotOpen
	}

	worker, err := s.userRepo.GetUserByID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	app := &models.PostApplication{
		PostID:                  postID,
		WorkerID:                workerID,
		Message:                 strings.TrimSpace(req.Message),
		ProposedCost:            req.ProposedCost,
		EstimatedCompletionTime: strings.TrimSpace(req.EstimatedCompletionTime),
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.ApplicationReceived{
		Application: *app,
		Post:        *post,
		WorkerName:  worker.Name,
	})

	return app, nil
}

func (s *applicationService) ListForPost(ctx context.Context, postID, contractorID string) ([]models.PostApplication, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.ContractorID != contractorID {
		return nil, ErrForbidden
	}

	return s.appRepo.GetByPostID(ctx, postID)
}

func (s *applicationService) ListForWorker(ctx context.Context, workerID string) ([]models.PostApplication, error) {
	return s.appRepo.GetByWorkerID(ctx, workerID)
}

// Respond resolves a pending application on behalf of the post's owner.
// Accepting assigns the worker, auto-rejects every sibling still
// pending, creates the active project and moves the post to
// in_progress, all in one transaction; the notifications fan out after
// commit. Rejecting only resolves the one application.
func (s *applicationService) Respond(ctx context.Context, applicationID, contractorID, action string) (*repository.AcceptResult, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, app.PostID)
	if err != nil {
		return nil, err
	}

	if post.ContractorID != contractorID {
		return nil, ErrForbidden
	}

	switch action {
	case RespondAccept:
		result, err := s.appRepo.Accept(ctx, applicationID)
		if err != nil {
			return nil, err
		}

		s.bus.Publish(ctx, events.ApplicationResolved{
			Application: result.Application,
			Post:        result.Post,
			Accepted:    true,
		})
		for _, rejected := range result.Rejected {
			s.bus.Publish(ctx, events.ApplicationResolved{
				Application: rejected,
				Post:        result.Post,
				Accepted:    false,
			})
		}
		s.bus.Publish(ctx, events.PostsUpdated{ContractorID: contractorID, PostID: post.PostID})

		return result, nil

	case RespondReject:
		rejected, err := s.appRepo.Reject(ctx, applicationID)
		if err != nil {
			return nil, err
		}

		s.bus.Publish(ctx, events.ApplicationResolved{
			Application: *rejected,
			Post:        *post,
			Accepted:    false,
		})

		return &repository.AcceptResult{Application: *rejected, Post: *post}, nil

	default:
		return nil, fmt.Errorf("acción desconocida: %s", action)
	}
}
