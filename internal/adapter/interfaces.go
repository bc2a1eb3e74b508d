// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound client for the file-hosting API the
// image vault commits objects to.
//
// The primary abstraction is [ContentBackend], which mirrors the three GitHub
// Contents API calls the vault needs. [NewGitHubContentBackend] talks to the
// real API over HTTP; [NewMemoryContentBackend] keeps files in memory with
// the same revision semantics and is used by tests and local runs.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] independently of the
// backend (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/wavrons/stargate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/content_backend_mock.go -package=mock

// ContentBackend is a path-addressed file store where every mutation is a
// commit and every file carries a blob SHA that must be presented to replace
// or delete it.
type ContentBackend interface {
	// GetContent returns the file at path. Directories are reported as
	// [ErrNotAFile].
	GetContent(ctx context.Context, path string) (models.ContentFile, error)

	// CreateOrUpdateFileContents creates the file, or replaces it when req.SHA
	// matches the current blob SHA. A missing or stale SHA for an existing
	// file yields [ErrConflict].
	CreateOrUpdateFileContents(ctx context.Context, req models.FileContentsRequest) (models.FileCommitResponse, error)

	// DeleteFile removes the file whose current blob SHA is req.SHA.
	DeleteFile(ctx context.Context, req models.DeleteFileRequest) (models.FileCommitResponse, error)
}
