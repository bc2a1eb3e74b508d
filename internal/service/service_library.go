package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/internal/utils"
	"github.com/wavrons/stargate/internal/validators"
	"github.com/wavrons/stargate/models"
)

type libraryService struct {
	vault     VaultService
	entries   store.VaultEntryRepository
	ids       utils.IDGenerator
	quota     int64
	imageRoot string
	now       func() time.Time

	logger *logger.Logger
}

func NewLibraryService(vault VaultService, entries store.VaultEntryRepository, cfg config.Vault, logger *logger.Logger) LibraryService {
	quota := cfg.ScopeQuota
	if quota <= 0 {
		quota = validators.DefaultScopeQuota
	}
	imageRoot := strings.Trim(cfg.ImageRoot, "/")
	if imageRoot == "" {
		imageRoot = DefaultImageRoot
	}

	return &libraryService{
		vault:     vault,
		entries:   entries,
		ids:       utils.NewUUIDGenerator(),
		quota:     quota,
		imageRoot: imageRoot,
		now:       time.Now,
		logger:    logger,
	}
}

// Add uploads req with the scope's recorded usage and records the result.
// When the ledger insert fails the object is deleted again.
func (l *libraryService) Add(ctx context.Context, req models.UploadRequest) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	used, err := l.entries.ScopeUsage(ctx, req.ScopeID)
	if err != nil {
		log.Err(err).Str("func", "libraryService.Add").Msg("error reading scope usage")
		return models.VaultEntry{}, fmt.Errorf("read scope usage: %w", err)
	}
	req.StorageUsed = used
	if req.StorageLimit <= 0 {
		req.StorageLimit = l.quota
	}

	result, err := l.vault.Upload(ctx, req)
	if err != nil {
		return models.VaultEntry{}, err
	}

	entry := models.VaultEntry{
		ID:          l.ids.Generate(),
		ScopeID:     req.ScopeID,
		Path:        result.Path,
		FileName:    req.FileName,
		ContentType: result.ContentType,
		SizeBytes:   result.SizeBytes,
		CreatedAt:   l.now().UTC(),
	}

	if err = l.entries.SaveEntry(ctx, entry); err != nil {
		log.Err(err).Str("func", "libraryService.Add").Str("path", result.Path).Msg("error recording entry, removing object")
		if delErr := l.vault.Delete(ctx, req.ScopeID, result.Path); delErr != nil {
			log.Err(delErr).Str("func", "libraryService.Add").Str("path", result.Path).Msg("orphaned object left in store")
		}
		return models.VaultEntry{}, fmt.Errorf("record vault entry: %w", err)
	}

	return entry, nil
}

func (l *libraryService) List(ctx context.Context, scopeID string) ([]models.VaultEntry, error) {
	return l.entries.ListEntries(ctx, scopeID)
}

func (l *libraryService) Usage(ctx context.Context, scopeID string) (models.ScopeUsage, error) {
	used, err := l.entries.ScopeUsage(ctx, scopeID)
	if err != nil {
		return models.ScopeUsage{}, err
	}

	return models.ScopeUsage{
		ScopeID:        scopeID,
		UsedBytes:      used,
		LimitBytes:     l.quota,
		RemainingBytes: max(0, l.quota-used),
	}, nil
}

func (l *libraryService) Fetch(ctx context.Context, scopeID, objectPath string) (*models.Resource, error) {
	return l.vault.Download(ctx, scopeID, objectPath)
}

func (l *libraryService) Entry(ctx context.Context, scopeID, objectPath string) (models.VaultEntry, error) {
	return l.entries.GetEntry(ctx, scopeID, objectPath)
}

// Remove deletes the object, then forgets its ledger row. An object already
// gone from the store still has its row removed.
func (l *libraryService) Remove(ctx context.Context, scopeID, objectPath string) error {
	if err := l.vault.Delete(ctx, scopeID, objectPath); err != nil {
		return err
	}

	if err := l.entries.DeleteEntry(ctx, scopeID, objectPath); err != nil && !errors.Is(err, store.ErrEntryNotFound) {
		return fmt.Errorf("forget vault entry: %w", err)
	}

	return nil
}

func (l *libraryService) ObjectPath(scopeID, objectName string) string {
	return l.imageRoot + "/" + scopeID + "/" + objectName
}
