package service

import (
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/crypto"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/store"
)

type Services struct {
	VaultService   VaultService
	LibraryService LibraryService
	TokenService   TokenService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices builds every service from the storages and the key chain.
func NewServices(storages *store.Storages, keyChain *crypto.ScopeKeyChain, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, cfg.Vault, logger)
	if err != nil {
		return nil, err
	}

	vault := NewVaultService(storages.ObjectStore, keyChain, cfg.Vault, logger)

	return &Services{
		VaultService:   vault,
		LibraryService: NewLibraryService(vault, storages.VaultEntryRepository, cfg.Vault, logger),
		TokenService:   NewTokenService(keyChain.Provider(), logger),
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
