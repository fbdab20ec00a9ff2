package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
)

type TokenGenerator interface {
	GenerateToken(subject string) (string, error)
}

// AuthService pairs a device by exchanging the configured pin for a token.
type AuthService struct {
	credential *domain.DeviceCredential
	tokens     TokenGenerator
}

func NewAuthService(credential *domain.DeviceCredential, tokens TokenGenerator) *AuthService {
	return &AuthService{
		credential: credential,
		tokens:     tokens,
	}
}

func (s *AuthService) Enabled() bool {
	return s.credential != nil
}

func (s *AuthService) Pair(ctx context.Context, pin string) (string, error) {
	if s.credential == nil {
		return "", domain.ErrPairingDisabled
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := s.credential.CheckPin(pin); err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken(domain.DeviceSubject)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to issue token: %w", err)
	}
	return token, nil
}
