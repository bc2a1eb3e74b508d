// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wavrons/stargate/internal/adapter"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/models"
)

type contentObjectStore struct {
	backend adapter.ContentBackend

	mu        sync.RWMutex
	revisions map[string]string

	logger *logger.Logger
}

// NewContentObjectStore returns an [ObjectStore] over backend with a private
// revision cache.
func NewContentObjectStore(backend adapter.ContentBackend, logger *logger.Logger) ObjectStore {
	return &contentObjectStore{
		backend:   backend,
		revisions: make(map[string]string),
		logger:    logger,
	}
}

// Put implements [ObjectStore].
func (s *contentObjectStore) Put(ctx context.Context, path, content, knownRevision string, opts ...WriteOption) (string, error) {
	log := logger.FromContext(ctx)
	o := applyWriteOptions("Update "+path, opts)

	resp, err := s.backend.CreateOrUpdateFileContents(ctx, models.FileContentsRequest{
		Path:    path,
		Message: o.message,
		Content: content,
		SHA:     knownRevision,
	})
	if err != nil {
		err = mapBackendError(err)
		if errors.Is(err, ErrRevisionConflict) {
			s.forget(path)
		}
		log.Err(err).Str("func", "contentObjectStore.Put").Str("path", path).Msg("error writing object")
		return "", err
	}

	var revision string
	if resp.Content != nil {
		revision = resp.Content.SHA
	}
	if revision == "" {
		return "", fmt.Errorf("%w: backend returned no revision for %s", ErrTransport, path)
	}

	s.remember(path, revision)
	log.Debug().Str("func", "contentObjectStore.Put").Str("path", path).Str("commit", resp.Commit.SHA).Msg("object written")

	return revision, nil
}

// Get implements [ObjectStore].
func (s *contentObjectStore) Get(ctx context.Context, path string) (models.RemoteObject, error) {
	file, err := s.backend.GetContent(ctx, path)
	if err != nil {
		err = mapBackendError(err)
		if errors.Is(err, ErrObjectNotFound) {
			s.forget(path)
		}
		return models.RemoteObject{}, err
	}

	s.remember(path, file.SHA)

	return models.RemoteObject{
		Path:     path,
		Content:  file.Content,
		Revision: file.SHA,
	}, nil
}

// Delete implements [ObjectStore].
func (s *contentObjectStore) Delete(ctx context.Context, path, knownRevision string, opts ...WriteOption) error {
	log := logger.FromContext(ctx)
	o := applyWriteOptions("Delete "+path, opts)

	revision := knownRevision
	if revision == "" {
		revision, _ = s.cached(path)
	}
	if revision == "" {
		obj, err := s.Get(ctx, path)
		if err != nil {
			return err
		}
		revision = obj.Revision
	}

	_, err := s.backend.DeleteFile(ctx, models.DeleteFileRequest{
		Path:    path,
		Message: o.message,
		SHA:     revision,
	})
	if err != nil {
		err = mapBackendError(err)
		if errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrRevisionConflict) {
			s.forget(path)
		}
		log.Err(err).Str("func", "contentObjectStore.Delete").Str("path", path).Msg("error deleting object")
		return err
	}

	s.forget(path)
	return nil
}

func (s *contentObjectStore) cached(path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rev, ok := s.revisions[path]
	return rev, ok
}

func (s *contentObjectStore) remember(path, revision string) {
	if revision == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revisions[path] = revision
}

func (s *contentObjectStore) forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.revisions, path)
}

// mapBackendError translates adapter errors into the store taxonomy while
// keeping the original error in the chain.
func mapBackendError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrTimeout):
		return fmt.Errorf("%w: %w: %w", ErrTimeout, ErrTransport, err)
	case errors.Is(err, adapter.ErrNotFound), errors.Is(err, adapter.ErrNotAFile):
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrRevisionConflict, err)
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errors.Is(err, adapter.ErrInvalidPath):
		return fmt.Errorf("%w: %w", ErrInvalidPath, err)
	default:
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
}
