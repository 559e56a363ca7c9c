package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"servicapp/internal/models"
)

// Sentinel errors the handlers branch on. Everything else is wrapped
// with context and treated as a server-side failure.
var (
	ErrNotFound             = errors.New("registro no encontrado")
	ErrDuplicateApplication = errors.New("ya existe una postulación para esta publicación")
	ErrApplicationResolved  = errors.New("la postulación ya fue resuelta")
	ErrPostNotOpen          = errors.New("la publicación ya no está abierta")
	ErrReviewExists         = errors.New("el proyecto ya fue calificado")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	SetResetToken(ctx context.Context, userID, resetToken string, expiryTime time.Time) error
	GetUserByResetToken(ctx context.Context, resetToken string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	GetCompletedWorkers(ctx context.Context) ([]models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByContractorID(ctx context.Context, contractorID string) ([]models.Post, error)
	GetOpenPosts(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, postID string) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.PostImage) error
	GetByPostID(ctx context.Context, postID string) ([]models.PostImage, error)
	Delete(ctx context.Context, imageID string) error
	DeleteByPostID(ctx context.Context, postID string) error
}

// AcceptResult carries everything the accept transaction changed, so the
// caller can fan out notifications after commit.
type AcceptResult struct {
	Application models.PostApplication
	Post        models.Post
	Project     models.ActiveProject
	Rejected    []models.PostApplication
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.PostApplication) error
	GetByID(ctx context.Context, applicationID string) (*models.PostApplication, error)
	ExistsForWorker(ctx context.Context, postID, workerID string) (bool, error)
	GetByPostID(ctx context.Context, postID string) ([]models.PostApplication, error)
	GetByWorkerID(ctx context.Context, workerID string) ([]models.PostApplication, error)
	Accept(ctx context.Context, applicationID string) (*AcceptResult, error)
	Reject(ctx context.Context, applicationID string) (*models.PostApplication, error)
}

type ProjectRepository interface {
	GetByID(ctx context.Context, projectID string) (*models.ActiveProject, error)
	GetByWorkerID(ctx context.Context, workerID string) ([]models.ActiveProject, error)
	GetByContractorID(ctx context.Context, contractorID string) ([]models.ActiveProject, error)
	UpdateStatus(ctx context.Context, projectID string, from, to models.ProjectStatus) error
	SetStagePhoto(ctx context.Context, projectID string, stage int, photoURL string, uploadedAt time.Time) error
	UpdateProgress(ctx context.Context, projectID string, percentage int) error
}

type ReviewRepository interface {
	// Finalize inserts the review and performs the whole closure inside
	// one transaction: recompute the worker's aggregate rating, mark the
	// project paid and the post completed. Returns the new rating.
	Finalize(ctx context.Context, review *models.WorkerReview) (float64, error)
	GetByWorkerID(ctx context.Context, workerID string) ([]models.WorkerReview, error)
	ExistsForProject(ctx context.Context, projectID string) (bool, error)
}

type StatsRepository interface {
	CountTables(ctx context.Context) (int, error)
	PlatformCounts(ctx context.Context) (*PlatformStats, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type Repository struct {
	User         UserRepository
	Post         PostRepository
	Image        ImageRepository
	Application  ApplicationRepository
	Project      ProjectRepository
	Review       ReviewRepository
	Notification NotificationRepository
	Stats        StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		Image:        NewImageRepository(db),
		Application:  NewApplicationRepository(db),
		Project:      NewProjectRepository(db),
		Review:       NewReviewRepository(db),
		Notification: NewNotificationRepository(db),
		Stats:        NewStatsRepository(db),
	}
}
