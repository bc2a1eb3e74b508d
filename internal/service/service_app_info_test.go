package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/validators"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_EmptyVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, config.Vault{}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestGetAppVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, config.Vault{}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

// ─────────────────────────────────────────────
// GetLimits
// ─────────────────────────────────────────────

func TestGetLimits_DefaultsForZeroConfig(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1"}, config.Vault{}, logger.Nop())
	require.NoError(t, err)

	limits := svc.GetLimits(context.Background())

	assert.Equal(t, validators.DefaultMaxFileSize, limits.MaxFileSizeBytes)
	assert.Equal(t, validators.DefaultScopeQuota, limits.ScopeQuotaBytes)
	assert.Equal(t, validators.AcceptedImageTypes, limits.AcceptedTypes)
}

func TestGetLimits_Configured(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1"}, config.Vault{MaxFileSize: 2048, ScopeQuota: 8192}, logger.Nop())
	require.NoError(t, err)

	limits := svc.GetLimits(context.Background())

	assert.Equal(t, int64(2048), limits.MaxFileSizeBytes)
	assert.Equal(t, int64(8192), limits.ScopeQuotaBytes)
}

func TestGetLimits_ReturnsCopy(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1"}, config.Vault{}, logger.Nop())
	require.NoError(t, err)

	limits := svc.GetLimits(context.Background())
	limits.AcceptedTypes[0] = "text/html"

	assert.Equal(t, "image/jpeg", svc.GetLimits(context.Background()).AcceptedTypes[0])
	assert.Equal(t, "image/jpeg", validators.AcceptedImageTypes[0])
}
