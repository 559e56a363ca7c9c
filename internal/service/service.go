package service

import (
	"errors"
	"log/slog"

	"servicapp/internal/config"
	"servicapp/internal/events"
	"servicapp/internal/repository"
	"servicapp/internal/storage"
)

// ErrForbidden marks an operation attempted on a resource the caller
// does not own.
var ErrForbidden = errors.New("no autorizado para esta operación")

type Service struct {
	Auth         AuthService
	User         UserService
	Post         PostService
	Application  ApplicationService
	Project      ProjectService
	Review       ReviewService
	Notification NotificationService
	Stats        StatsService
	Dispatcher   *Dispatcher
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, bus *events.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher := NewDispatcher(rep.Notification, logger)
	dispatcher.Register(bus)

	return &Service{
		Auth:         NewAuthService(rep.User, cfg),
		User:         NewUserService(rep.User, bus),
		Post:         NewPostService(rep.Post, rep.Image, rep.User, store, bus, logger),
		Application:  NewApplicationService(rep.Application, rep.Post, rep.User, bus),
		Project:      NewProjectService(rep.Project, store),
		Review:       NewReviewService(rep.Review, rep.Project, bus),
		Notification: NewNotificationService(rep.Notification),
		Stats:        NewStatsService(rep.Stats),
		Dispatcher:   dispatcher,
	}
}
