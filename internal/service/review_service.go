package service

import (
	"context"
	"fmt"

	"servicapp/internal/events"
	"servicapp/internal/models"
	"servicapp/internal/repository"
)

type SubmitReviewRequest struct {
	Rating              int    `json:"rating"`
	Comment             string `json:"comment"`
	PunctualityRating   int    `json:"punctualityRating"`
	QualityRating       int    `json:"qualityRating"`
	PriceRating         int    `json:"priceRating"`
	CommunicationRating int    `json:"communicationRating"`
}

type ReviewService interface {
	// SubmitReview closes a completed project: it records the review,
	// recomputes the worker's aggregate rating, marks the project paid
	// and the post completed. Returns the review and the new rating.
	SubmitReview(ctx context.Context, projectID, contractorID string, req SubmitReviewRequest) (*models.WorkerReview, float64, error)
	WorkerReviews(ctx context.Context, workerID string) ([]models.WorkerReview, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	projectRepo repository.ProjectRepository
	bus         *events.Bus
}

func NewReviewService(reviewRepo repository.ReviewRepository, projectRepo repository.ProjectRepository, bus *events.Bus) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		projectRepo: projectRepo,
		bus:         bus,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, projectID, contractorID string, req SubmitReviewRequest) (*models.WorkerReview, float64, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, 0, err
	}

	if project.ContractorID != contractorID {
		return nil, 0, ErrForbidden
	}

	if project.Status != models.ProjectCompleted {
		return nil, 0, fmt.Errorf("el proyecto aún no está completado")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, 0, fmt.Errorf("la calificación debe estar entre 1 y 5")
	}

	review := &models.WorkerReview{
		WorkerID:            project.WorkerID,
		ContractorID:        contractorID,
		PostID:              project.PostID,
		ProjectID:           projectID,
		Rating:              req.Rating,
		Comment:             req.Comment,
		PunctualityRating:   req.PunctualityRating,
		QualityRating:       req.QualityRating,
		PriceRating:         req.PriceRating,
		CommunicationRating: req.CommunicationRating,
	}

	newRating, err := s.reviewRepo.Finalize(ctx, review)
	if err != nil {
		return nil, 0, err
	}

	s.bus.Publish(ctx, events.ReviewSubmitted{Review: *review, NewRating: newRating})
	s.bus.Publish(ctx, events.PostsUpdated{ContractorID: contractorID, PostID: project.PostID})

	return review, newRating, nil
}

func (s *reviewService) WorkerReviews(ctx context.Context, workerID string) ([]models.WorkerReview, error) {
	return s.reviewRepo.GetByWorkerID(ctx, workerID)
}
