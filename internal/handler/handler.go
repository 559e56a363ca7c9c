package handlers

import (
	"github.com/go-playground/validator/v10"

	"servicapp/internal/config"
	"servicapp/internal/service"
)

type Handlers struct {
	Auth         service.AuthService
	User         service.UserService
	Post         service.PostService
	Application  service.ApplicationService
	Project      service.ProjectService
	Review       service.ReviewService
	Notification service.NotificationService
	Stats        service.StatsService
	Cfg          *config.Config
	Validate     *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:         services.Auth,
		User:         services.User,
		Post:         services.Post,
		Application:  services.Application,
		Project:      services.Project,
		Review:       services.Review,
		Notification: services.Notification,
		Stats:        services.Stats,
		Cfg:          cfg,
		Validate:     validator.New(),
	}
}
