package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
)

type SessionReader interface {
	ReadAll(ctx context.Context) ([]*domain.Session, error)
	ReadByPeriod(ctx context.Context, period domain.Period, now time.Time) ([]*domain.Session, error)
}

type HistoryService struct {
	repo SessionReader
	now  func() time.Time
}

func NewHistoryService(repo SessionReader) *HistoryService {
	return &HistoryService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *HistoryService) List(ctx context.Context, period domain.Period) ([]*domain.Session, error) {
	return s.repo.ReadByPeriod(ctx, period, s.now())
}

func (s *HistoryService) All(ctx context.Context) ([]*domain.Session, error) {
	return s.repo.ReadAll(ctx)
}

func (s *HistoryService) Summary(ctx context.Context, period domain.Period) (domain.PeriodSummary, error) {
	sessions, err := s.List(ctx, period)
	if err != nil {
		return domain.PeriodSummary{}, err
	}
	return domain.Summarize(period, sessions), nil
}

func (s *HistoryService) Chart(ctx context.Context, period domain.Period) ([]domain.ChartPoint, error) {
	sessions, err := s.List(ctx, period)
	if err != nil {
		return nil, err
	}
	return domain.BuildChart(period, sessions), nil
}

// Latest returns the most recent session ever recorded, nil if there is none.
func (s *HistoryService) Latest(ctx context.Context) (*domain.Session, error) {
	sessions, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.LatestSession(sessions), nil
}
