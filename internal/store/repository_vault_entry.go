// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/models"
)

// vaultEntryRepository is the SQL implementation of [VaultEntryRepository]
// over the "vault_entries" table. It works with both PostgreSQL and SQLite;
// the placeholder format follows the connection's [Dialect].
type vaultEntryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVaultEntryRepository constructs a [VaultEntryRepository] backed by db.
func NewVaultEntryRepository(db *DB, logger *logger.Logger) VaultEntryRepository {
	logger.Debug().Msg("creating vault entry repository")
	return &vaultEntryRepository{
		db:     db,
		logger: logger,
	}
}

// SaveEntry inserts a new ledger row. A second row for the same path fails
// with [ErrEntryAlreadyExists].
func (r *vaultEntryRepository) SaveEntry(ctx context.Context, entry models.VaultEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertVaultEntryQuery(r.db.builder(), entry)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.SaveEntry").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.SaveEntry").Msg("error inserting vault entry")
		return r.wrapExecError(err)
	}

	return nil
}

func (r *vaultEntryRepository) GetEntry(ctx context.Context, scopeID, path string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectVaultEntryQuery(r.db.builder(), scopeID, path)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entry models.VaultEntry
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = scanVaultEntry(row, &entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultEntry{}, ErrEntryNotFound
		}
		log.Err(err).Str("func", "*vaultEntryRepository.GetEntry").Msg("error scanning vault entry")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

// ListEntries returns the scope's entries, newest first.
func (r *vaultEntryRepository) ListEntries(ctx context.Context, scopeID string) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListVaultEntriesQuery(r.db.builder(), scopeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.ListEntries").Msg("error querying vault entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0)
	for rows.Next() {
		var entry models.VaultEntry
		if err = scanVaultEntry(rows, &entry); err != nil {
			log.Err(err).Str("func", "*vaultEntryRepository.ListEntries").Msg("error scanning vault entry")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// DeleteEntry removes the ledger row for path. Deleting a missing row is not
// an error.
func (r *vaultEntryRepository) DeleteEntry(ctx context.Context, scopeID, path string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteVaultEntryQuery(r.db.builder(), scopeID, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.DeleteEntry").Msg("error deleting vault entry")
		return r.wrapExecError(err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		log.Debug().Str("func", "*vaultEntryRepository.DeleteEntry").Str("path", path).Msg("no vault entry to delete")
	}

	return nil
}

// ScopeUsage returns the sum of recorded plaintext sizes for scopeID.
func (r *vaultEntryRepository) ScopeUsage(ctx context.Context, scopeID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildScopeUsageQuery(r.db.builder(), scopeID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var used int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&used); err != nil {
		log.Err(err).Str("func", "*vaultEntryRepository.ScopeUsage").Msg("error reading scope usage")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return used, nil
}

// wrapExecError translates a failed write using the dialect's classifier.
func (r *vaultEntryRepository) wrapExecError(err error) error {
	switch r.db.classify(err) {
	case UniqueViolation:
		return ErrEntryAlreadyExists
	case Retryable:
		return fmt.Errorf("%w: %w", ErrLedgerBusy, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaultEntry(row rowScanner, entry *models.VaultEntry) error {
	return row.Scan(
		&entry.ID,
		&entry.ScopeID,
		&entry.Path,
		&entry.FileName,
		&entry.ContentType,
		&entry.SizeBytes,
		&entry.CreatedAt,
	)
}
