package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/wavrons/stargate/internal/adapter"
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/crypto"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/service"
	"github.com/wavrons/stargate/internal/store"
)

// App is the wired vault shared by the server and the CLI.
type App struct {
	Services *service.Services
	Storages *store.Storages

	db *store.DB
}

// Close releases the ledger connection.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// NewProvider builds the crypto provider selected by cfg.KDF.
func NewProvider(cfg config.App) (crypto.Provider, error) {
	kdf, err := crypto.NewKeyDeriver(cfg.KDF)
	if err != nil {
		return nil, err
	}
	return crypto.NewProvider(kdf), nil
}

// Bootstrap wires the content backend, object store, ledger and services.
// A sealed repository token is opened with the configured PIN first.
func Bootstrap(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	provider, err := NewProvider(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("create crypto provider: %w", err)
	}
	keyChain := crypto.NewScopeKeyChain(provider, cfg.App.ImageSecret, cfg.App.ScopeNamespace)

	token, err := repoToken(ctx, cfg.Storage.Repo, service.NewTokenService(provider, log))
	if err != nil {
		return nil, err
	}

	backend, err := adapter.NewContentBackend(cfg.Storage.Repo, cfg.Adapter, token, log)
	if err != nil {
		return nil, fmt.Errorf("create content backend: %w", err)
	}

	db, err := store.NewConnectDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect ledger: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate ledger: %w", err), db.Close())
	}

	storages := store.NewStorages(
		store.NewContentObjectStore(backend, log),
		store.NewVaultEntryRepository(db, log),
	)

	services, err := service.NewServices(storages, keyChain, cfg, log)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create services: %w", err), db.Close())
	}

	return &App{Services: services, Storages: storages, db: db}, nil
}

func repoToken(ctx context.Context, repo config.Repo, tokens service.TokenService) (string, error) {
	if repo.EncryptedToken == "" {
		return repo.Token, nil
	}

	token, err := tokens.Open(ctx, repo.TokenPIN, repo.EncryptedToken)
	if err != nil {
		return "", fmt.Errorf("open repository token: %s: %w", MsgInvalidPINOrCorruptedData, err)
	}
	return token, nil
}
