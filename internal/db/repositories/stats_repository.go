package repositories

import (
	"context"
	"fmt"

	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// StatsRepo runs the raw aggregate queries behind the admin stats and the lifecycle monitor.
type StatsRepo struct {
	db *sqlx.DB
}

func NewStatsRepo(db *sqlx.DB) *StatsRepo {
	return &StatsRepo{db}
}

func (r *StatsRepo) Snapshot(ctx context.Context) (*entities.LifecycleStats, error) {
	stats := &entities.LifecycleStats{}

	if err := r.db.SelectContext(ctx, &stats.Applications, constants.CountApplicationsByStatus); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.Requests, constants.CountRequestsByStatus); err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, constants.CountRoadmaps).Scan(&stats.Roadmaps); err != nil {
		return nil, fmt.Errorf("failed to count roadmaps: %w", err)
	}

	return stats, nil
}

// Ping checks the sqlx pool.
func (r *StatsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
