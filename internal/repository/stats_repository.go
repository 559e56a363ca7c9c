package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PlatformStats is the summary shown on the operations dashboard.
type PlatformStats struct {
	Workers        int `json:"workers" db:"workers"`
	Contractors    int `json:"contractors" db:"contractors"`
	OpenPosts      int `json:"openPosts" db:"open_posts"`
	ActiveProjects int `json:"activeProjects" db:"active_projects"`
	Reviews        int `json:"reviews" db:"reviews"`
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public'
		`)
	if err != nil {
		return 0, fmt.Errorf("error al contar las tablas de la base de datos: %w", err)
	}

	return count, nil
}

func (r *statsRepository) PlatformCounts(ctx context.Context) (*PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE user_type = 'worker') AS workers,
			(SELECT COUNT(*) FROM users WHERE user_type = 'contractor') AS contractors,
			(SELECT COUNT(*) FROM posts WHERE LOWER(COALESCE(status, '')) NOT IN ('in_progress', 'completed')) AS open_posts,
			(SELECT COUNT(*) FROM active_projects WHERE LOWER(status) <> 'paid') AS active_projects,
			(SELECT COUNT(*) FROM worker_reviews) AS reviews
	`

	var stats PlatformStats
	err := r.db.GetContext(ctx, &stats, query)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las estadísticas: %w", err)
	}

	return &stats, nil
}
