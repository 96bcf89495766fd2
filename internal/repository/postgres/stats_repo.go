package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepo struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *pgxpool.Pool) domain.StatsRepository {
	return &statsRepo{db: db}
}

// DashboardStats aggregates one publisher's job and application counts
// in a single round trip.
func (r *statsRepo) DashboardStats(ctx context.Context, publisherID string) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE publisher_id = $1),
			(SELECT COUNT(*) FROM jobs WHERE publisher_id = $1 AND status = 'ACTIVE'),
			COUNT(a.id),
			COUNT(a.id) FILTER (WHERE a.status = 'PENDING'),
			COUNT(a.id) FILTER (WHERE a.created_at > NOW() - INTERVAL '7 days'),
			COUNT(a.id) FILTER (WHERE a.created_at >= date_trunc('month', NOW()))
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		WHERE j.publisher_id = $1`

	var stats domain.DashboardStats
	err := r.db.QueryRow(ctx, query, publisherID).Scan(
		&stats.TotalJobs,
		&stats.ActiveJobs,
		&stats.TotalApplications,
		&stats.PendingApplications,
		&stats.RecentApplications,
		&stats.MonthlyApplications,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
