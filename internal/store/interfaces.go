// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the persistence layers of the image vault: the
// revision-tracking [ObjectStore] on top of a content backend, and the SQL
// ledger of uploaded objects ([VaultEntryRepository]).
package store

import (
	"context"

	"github.com/wavrons/stargate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ObjectStore is a path-addressed store where every write is a commit and
// overwriting or deleting an object requires its current revision.
//
// Implementations remember the last revision they observed per path; the
// cache is an optimisation and is never authoritative.
type ObjectStore interface {
	// Put writes content (Base64 transport text) at path and returns the new
	// revision. An empty knownRevision means "create": it fails with
	// [ErrRevisionConflict] when the object already exists.
	Put(ctx context.Context, path, content, knownRevision string, opts ...WriteOption) (string, error)

	// Get returns the object at path, or [ErrObjectNotFound].
	Get(ctx context.Context, path string) (models.RemoteObject, error)

	// Delete removes the object at path. The revision is resolved from
	// knownRevision, then the cache, then a fresh Get.
	Delete(ctx context.Context, path, knownRevision string, opts ...WriteOption) error
}

// VaultEntryRepository records uploaded objects so that outer surfaces can
// list them and account for scope usage.
type VaultEntryRepository interface {
	SaveEntry(ctx context.Context, entry models.VaultEntry) error
	GetEntry(ctx context.Context, scopeID, path string) (models.VaultEntry, error)
	ListEntries(ctx context.Context, scopeID string) ([]models.VaultEntry, error)
	DeleteEntry(ctx context.Context, scopeID, path string) error
	ScopeUsage(ctx context.Context, scopeID string) (int64, error)
}

// ErrorClassificator maps driver errors to a coarse [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
