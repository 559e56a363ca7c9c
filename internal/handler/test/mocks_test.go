package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"servicapp/internal/models"
	"servicapp/internal/repository"
	"servicapp/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req service.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Signin(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	args := m.Called(ctx, resetToken, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CompleteWorkerProfile(ctx context.Context, userID string, req service.WorkerProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CompleteContractorProfile(ctx context.Context, userID string, req service.ContractorProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ViewProfile(ctx context.Context, targetID, viewerID string) (*models.User, error) {
	args := m.Called(ctx, targetID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, contractorID string, req service.CreatePostRequest) (*models.Post, int, error) {
	args := m.Called(ctx, contractorID, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Post), args.Int(1), args.Error(2)
}

func (m *MockPostService) WorkerFeed(ctx context.Context, workerID string) ([]models.Post, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ContractorPosts(ctx context.Context, contractorID string) ([]models.Post, error) {
	args := m.Called(ctx, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, contractorID string) error {
	args := m.Called(ctx, postID, contractorID)
	return args.Error(0)
}

func (m *MockPostService) AddImage(ctx context.Context, postID, contractorID, dataURI string, orderIndex int) (*models.PostImage, error) {
	args := m.Called(ctx, postID, contractorID, dataURI, orderIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostImage), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, postID, workerID string, req service.ApplyRequest) (*models.PostApplication, error) {
	args := m.Called(ctx, postID, workerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostApplication), args.Error(1)
}

func (m *MockApplicationService) ListForPost(ctx context.Context, postID, contractorID string) ([]models.PostApplication, error) {
	args := m.Called(ctx, postID, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostApplication), args.Error(1)
}

func (m *MockApplicationService) ListForWorker(ctx context.Context, workerID string) ([]models.PostApplication, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostApplication), args.Error(1)
}

func (m *MockApplicationService) Respond(ctx context.Context, applicationID, contractorID, action string) (*repository.AcceptResult, error) {
	args := m.Called(ctx, applicationID, contractorID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AcceptResult), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) ListForUser(ctx context.Context, user *models.User) ([]models.ActiveProject, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActiveProject), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, projectID, userID string) (*models.ActiveProject, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActiveProject), args.Error(1)
}

func (m *MockProjectService) AdvanceStatus(ctx context.Context, projectID, workerID string, to models.ProjectStatus) (*models.ActiveProject, error) {
	args := m.Called(ctx, projectID, workerID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActiveProject), args.Error(1)
}

func (m *MockProjectService) UploadStagePhoto(ctx context.Context, projectID, workerID string, stage int, dataURI string) (*models.ActiveProject, error) {
	args := m.Called(ctx, projectID, workerID, stage, dataURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActiveProject), args.Error(1)
}

func (m *MockProjectService) SetProgress(ctx context.Context, projectID, workerID string, percentage int) error {
	args := m.Called(ctx, projectID, workerID, percentage)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, projectID, contractorID string, req service.SubmitReviewRequest) (*models.WorkerReview, float64, error) {
	args := m.Called(ctx, projectID, contractorID, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.WorkerReview), args.Get(1).(float64), args.Error(2)
}

func (m *MockReviewService) WorkerReviews(ctx context.Context, workerID string) ([]models.WorkerReview, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkerReview), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
