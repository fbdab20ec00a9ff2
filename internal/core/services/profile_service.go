package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
)

type ProfileRepository interface {
	ReadProfile(ctx context.Context) (domain.UserProfile, error)
	WriteProfile(ctx context.Context, profile domain.UserProfile) error
	ReadHealthSettings(ctx context.Context) (domain.HealthSettings, error)
	WriteHealthSettings(ctx context.Context, settings domain.HealthSettings) error
}

type ProfileService struct {
	repo ProfileRepository
	now  func() time.Time
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context) (domain.UserProfile, error) {
	return s.repo.ReadProfile(ctx)
}

// UpdateProfile applies a raw form edit on top of the stored profile. Bad
// numbers are replaced by defaults rather than rejected.
func (s *ProfileService) UpdateProfile(ctx context.Context, input domain.ProfileInput) (domain.UserProfile, error) {
	prior, err := s.repo.ReadProfile(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile := domain.ApplyProfileInput(prior, input)
	if err := s.repo.WriteProfile(ctx, profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func (s *ProfileService) GetHealthSettings(ctx context.Context) (domain.HealthSettings, error) {
	return s.repo.ReadHealthSettings(ctx)
}

type UpdateHealthSettingsInput struct {
	ActivityLevel   string
	HealthObjective string
}

// UpdateHealthSettings changes only the fields that are set.
func (s *ProfileService) UpdateHealthSettings(ctx context.Context, input UpdateHealthSettingsInput) (domain.HealthSettings, error) {
	settings, err := s.repo.ReadHealthSettings(ctx)
	if err != nil {
		return domain.HealthSettings{}, err
	}

	if input.ActivityLevel != "" {
		level, err := domain.ParseActivityLevel(input.ActivityLevel)
		if err != nil {
			return domain.HealthSettings{}, err
		}
		settings.ActivityLevel = level
	}
	if input.HealthObjective != "" {
		objective, err := domain.ParseHealthObjective(input.HealthObjective)
		if err != nil {
			return domain.HealthSettings{}, err
		}
		settings.HealthObjective = objective
	}
	settings.UpdatedAt = s.now().UTC()

	if err := s.repo.WriteHealthSettings(ctx, settings); err != nil {
		return domain.HealthSettings{}, err
	}
	return settings, nil
}

func (s *ProfileService) GetHealthReport(ctx context.Context) (domain.HealthReport, error) {
	profile, err := s.repo.ReadProfile(ctx)
	if err != nil {
		return domain.HealthReport{}, err
	}
	settings, err := s.repo.ReadHealthSettings(ctx)
	if err != nil {
		return domain.HealthReport{}, err
	}
	return domain.NewHealthReport(profile, settings), nil
}
