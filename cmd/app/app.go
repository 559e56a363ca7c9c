package app

import (
	"log"
	"log/slog"
	"os"

	"servicapp/internal/config"
	"servicapp/internal/database"
	"servicapp/internal/events"
	"servicapp/internal/repository"
	"servicapp/internal/service"
	"servicapp/internal/storage"
)

// App wires the database, object storage, repositories and services
// together. The returned dispatcher is not started yet.
func App(cfg *config.Config) (*database.DB, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("No se pudo inicializar MinIO: %v", err)
	}

	repo := repository.NewRepository(db.DB)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	bus := events.NewBus()

	services := service.NewService(repo, cfg, minioClient, bus, logger)

	return db, services
}
