package service

import (
	"context"
	"strings"

	"github.com/wavrons/stargate/internal/crypto"
	"github.com/wavrons/stargate/internal/logger"
)

type tokenService struct {
	provider crypto.Provider

	logger *logger.Logger
}

func NewTokenService(provider crypto.Provider, logger *logger.Logger) TokenService {
	return &tokenService{
		provider: provider,
		logger:   logger,
	}
}

// Seal encrypts token under pin. The result is safe to keep in config.
func (t *tokenService) Seal(ctx context.Context, pin, token string) (string, error) {
	if pin == "" || strings.TrimSpace(token) == "" {
		return "", ErrInvalidDataProvided
	}

	envelope, err := crypto.SealSecret(t.provider, pin, strings.TrimSpace(token))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenService.Seal").Msg("error sealing token")
		return "", err
	}

	return envelope, nil
}

// Open returns the token sealed in envelope. A wrong pin yields
// [crypto.ErrAuthenticationFailed].
func (t *tokenService) Open(ctx context.Context, pin, envelope string) (string, error) {
	if pin == "" || strings.TrimSpace(envelope) == "" {
		return "", ErrInvalidDataProvided
	}

	token, err := crypto.OpenSecret(t.provider, pin, envelope)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "tokenService.Open").Msg("error opening token envelope")
		return "", err
	}

	return token, nil
}
