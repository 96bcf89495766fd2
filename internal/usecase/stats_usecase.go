package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type statsUsecase struct {
	statsRepo domain.StatsRepository
}

// NewStatsUsecase creates a new stats usecase
func NewStatsUsecase(statsRepo domain.StatsRepository) domain.StatsUsecase {
	return &statsUsecase{statsRepo: statsRepo}
}

func (uc *statsUsecase) GetDashboardStats(ctx context.Context, publisherID string) (*domain.DashboardStats, error) {
	stats, err := uc.statsRepo.DashboardStats(ctx, publisherID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}
