package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"servicapp/cmd/app"
	"servicapp/internal/config"
	handlers "servicapp/internal/handler"
	"servicapp/internal/middleware"
	"servicapp/internal/models"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY no está definido en el entorno")
	}

	db, services := app.App(cfg)
	defer db.CloseDB()

	services.Dispatcher.Start()
	defer services.Dispatcher.Stop()

	handler := handlers.NewHandlers(services, cfg)
	router := newRouter(handler, cfg)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Servidor escuchando en %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error al iniciar el servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Apagando el servidor...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Apagado forzado: %v", err)
	}
}

func newRouter(h *handlers.Handlers, cfg *config.Config) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware)

	// Public routes.
	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", h.PlatformStats).Methods(http.MethodGet)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/signin", h.Signin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", h.ResetPassword).Methods(http.MethodPost)
	auth.HandleFunc("/update-password", h.UpdatePassword).Methods(http.MethodPost)

	// Authenticated routes.
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuthMiddleware(cfg))

	api.HandleFunc("/me", h.GetCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/me/profile", h.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/reviews", h.GetWorkerReviews).Methods(http.MethodGet)

	api.HandleFunc("/posts/feed", h.Feed).Methods(http.MethodGet)
	api.HandleFunc("/posts/mine", h.MyPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}/applications", h.ListApplications).Methods(http.MethodGet)

	// Contractor-only surface.
	contractor := api.NewRoute().Subrouter()
	contractor.Use(middleware.RequireUserType(models.UserTypeContractor))
	contractor.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	contractor.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	contractor.HandleFunc("/posts/{id}/images", h.AddImage).Methods(http.MethodPost)
	contractor.HandleFunc("/applications/{id}/respond", h.Respond).Methods(http.MethodPost)
	contractor.HandleFunc("/projects/{id}/review", h.SubmitReview).Methods(http.MethodPost)

	// Worker-only surface.
	worker := api.NewRoute().Subrouter()
	worker.Use(middleware.RequireUserType(models.UserTypeWorker))
	worker.HandleFunc("/posts/{id}/applications", h.Apply).Methods(http.MethodPost)
	worker.HandleFunc("/applications/mine", h.MyApplications).Methods(http.MethodGet)
	worker.HandleFunc("/projects/{id}/status", h.UpdateProjectStatus).Methods(http.MethodPut)
	worker.HandleFunc("/projects/{id}/stages/{stage}/photo", h.UploadStagePhoto).Methods(http.MethodPost)
	worker.HandleFunc("/projects/{id}/progress", h.SetProgress).Methods(http.MethodPut)

	api.HandleFunc("/projects", h.ListProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", h.GetProject).Methods(http.MethodGet)

	api.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/unread-count", h.UnreadCount).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods(http.MethodPut)
	api.HandleFunc("/notifications/read-all", h.MarkAllNotificationsRead).Methods(http.MethodPut)

	return r
}
