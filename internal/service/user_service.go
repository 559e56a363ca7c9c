package service

import (
	"context"
	"fmt"
	"strings"

	"servicapp/internal/events"
	"servicapp/internal/models"
	"servicapp/internal/repository"
)

type WorkerProfileRequest struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Professions []string `json:"professions"`
	Specialties []string `json:"specialties"`
}

type ContractorProfileRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
}

type UserService interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	CompleteWorkerProfile(ctx context.Context, userID string, req WorkerProfileRequest) (*models.User, error)
	CompleteContractorProfile(ctx context.Context, userID string, req ContractorProfileRequest) (*models.User, error)
	ViewProfile(ctx context.Context, targetID, viewerID string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	bus      *events.Bus
}

func NewUserService(userRepo repository.UserRepository, bus *events.Bus) UserService {
	return &userService{userRepo: userRepo, bus: bus}
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// CompleteWorkerProfile applies the worker wizard fields. All profile
// mutation flows through here so the profile_completed invariant is
// checked in exactly one place: a completed worker profile has a name,
// a phone and at least one declared profession.
func (s *userService) CompleteWorkerProfile(ctx context.Context, userID string, req WorkerProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.UserType != models.UserTypeWorker {
		return nil, fmt.Errorf("el usuario no es un trabajador: %w", ErrForbidden)
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = strings.TrimSpace(req.Phone)
	user.Professions = cleanList(req.Professions)
	user.Specialties = cleanList(req.Specialties)
	user.ProfileCompleted = user.Name != "" && user.Phone != "" && len(user.Professions) > 0

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CompleteContractorProfile applies the contractor wizard fields. A
// completed contractor profile has a name and a phone.
func (s *userService) CompleteContractorProfile(ctx context.Context, userID string, req ContractorProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.UserType != models.UserTypeContractor {
		return nil, fmt.Errorf("el usuario no es un contratista: %w", ErrForbidden)
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = strings.TrimSpace(req.Phone)
	user.CompanyName = strings.TrimSpace(req.CompanyName)
	user.ProfileCompleted = user.Name != "" && user.Phone != ""

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ViewProfile returns a user's public profile. When a contractor looks
// at a worker, the worker gets a courtesy notification.
func (s *userService) ViewProfile(ctx context.Context, targetID, viewerID string) (*models.User, error) {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if viewerID == "" || viewerID == target.UserID {
		return target, nil
	}

	viewer, err := s.userRepo.GetUserByID(ctx, viewerID)
	if err != nil {
		return target, nil
	}

	if viewer.UserType == models.UserTypeContractor && target.UserType == models.UserTypeWorker {
		s.bus.Publish(ctx, events.ProfileViewed{
			WorkerID:   target.UserID,
			ViewerID:   viewer.UserID,
			ViewerName: viewer.Name,
		})
	}

	return target, nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
