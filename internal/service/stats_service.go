package service

import (
	"context"

	"servicapp/internal/repository"
)

type StatsService interface {
	TableCount(ctx context.Context) (int, error)
	PlatformCounts(ctx context.Context) (*repository.PlatformStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) TableCount(ctx context.Context) (int, error) {
	return s.statsRepo.CountTables(ctx)
}

func (s *statsService) PlatformCounts(ctx context.Context) (*repository.PlatformStats, error) {
	return s.statsRepo.PlatformCounts(ctx)
}
