package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
)

type DailySnapshotReader interface {
	ReadDailySnapshot(ctx context.Context) (domain.DailySnapshot, error)
}

// DailyService serves the day rollup. Rollover is lazy: a rollup stored on
// an earlier day reads as empty for today and nothing is purged.
type DailyService struct {
	repo DailySnapshotReader
}

func NewDailyService(repo DailySnapshotReader) *DailyService {
	return &DailyService{repo: repo}
}

func (s *DailyService) GetSnapshot(ctx context.Context, now time.Time) (domain.DailySnapshot, error) {
	stored, err := s.repo.ReadDailySnapshot(ctx)
	if err != nil {
		return domain.DailySnapshot{}, err
	}
	return stored.For(now), nil
}
