package service

import (
	"context"
	"slices"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/validators"
	"github.com/wavrons/stargate/models"
)

type appInfoService struct {
	appVersion string
	limits     models.VaultLimits

	logger *logger.Logger
}

// NewAppInfoService reports the build version and the upload limits the
// vault enforces. Zero limits in vaultCfg resolve to the validator defaults.
func NewAppInfoService(appCfg config.App, vaultCfg config.Vault, logger *logger.Logger) (AppInfoService, error) {
	if appCfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	v := validators.NewUploadValidator(nil, vaultCfg.MaxFileSize, vaultCfg.ScopeQuota)

	return &appInfoService{
		appVersion: appCfg.Version,
		limits: models.VaultLimits{
			MaxFileSizeBytes: v.MaxFileSize(),
			ScopeQuotaBytes:  v.ScopeQuota(),
			AcceptedTypes:    slices.Clone(validators.AcceptedImageTypes),
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// GetLimits returns a copy the caller may modify.
func (s *appInfoService) GetLimits(ctx context.Context) models.VaultLimits {
	limits := s.limits
	limits.AcceptedTypes = slices.Clone(s.limits.AcceptedTypes)
	return limits
}
