// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/wavrons/stargate/internal/codec"
	"github.com/wavrons/stargate/models"
)

// wrapWidth matches the line length GitHub uses for inline Base64 content.
const wrapWidth = 60

type memoryFile struct {
	data []byte
	sha  string
}

// memoryContentBackend keeps files in a map and reproduces the revision
// rules of the Contents API: blob SHAs are git blob hashes, and writes that
// do not name the current blob fail with [ErrConflict].
type memoryContentBackend struct {
	mu      sync.RWMutex
	files   map[string]memoryFile
	commits int
}

// NewMemoryContentBackend returns an empty in-memory [ContentBackend].
func NewMemoryContentBackend() ContentBackend {
	return &memoryContentBackend{files: make(map[string]memoryFile)}
}

// GetContent implements [ContentBackend].
func (m *memoryContentBackend) GetContent(_ context.Context, p string) (models.ContentFile, error) {
	p, err := cleanMemoryPath(p)
	if err != nil {
		return models.ContentFile{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[p]
	if !ok {
		if m.isDirLocked(p) {
			return models.ContentFile{}, fmt.Errorf("%w: %s is a directory", ErrNotAFile, p)
		}
		return models.ContentFile{}, fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	return models.ContentFile{
		Name:     path.Base(p),
		Path:     p,
		SHA:      f.sha,
		Size:     int64(len(f.data)),
		Type:     "file",
		Encoding: "base64",
		Content:  wrapLines(codec.ToTransportText(f.data), wrapWidth),
	}, nil
}

// CreateOrUpdateFileContents implements [ContentBackend].
func (m *memoryContentBackend) CreateOrUpdateFileContents(_ context.Context, req models.FileContentsRequest) (models.FileCommitResponse, error) {
	p, err := cleanMemoryPath(req.Path)
	if err != nil {
		return models.FileCommitResponse{}, err
	}

	data, err := codec.FromTransportText(req.Content)
	if err != nil {
		return models.FileCommitResponse{}, fmt.Errorf("%w: content is not base64", ErrBadRequest)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isDirLocked(p) {
		return models.FileCommitResponse{}, fmt.Errorf("%w: %s is a directory", ErrUnprocessable, p)
	}

	current, exists := m.files[p]
	switch {
	case exists && req.SHA == "":
		return models.FileCommitResponse{}, fmt.Errorf("%w: \"sha\" wasn't supplied", ErrConflict)
	case exists && req.SHA != current.sha:
		return models.FileCommitResponse{}, fmt.Errorf("%w: %s does not match %s", ErrConflict, p, req.SHA)
	case !exists && req.SHA != "":
		return models.FileCommitResponse{}, fmt.Errorf("%w: %s does not exist", ErrConflict, p)
	}

	f := memoryFile{data: data, sha: gitBlobSHA(data)}
	m.files[p] = f

	return models.FileCommitResponse{
		Content: &models.ContentFile{
			Name: path.Base(p),
			Path: p,
			SHA:  f.sha,
			Size: int64(len(data)),
			Type: "file",
		},
		Commit: m.nextCommitLocked(req.Message),
	}, nil
}

// DeleteFile implements [ContentBackend].
func (m *memoryContentBackend) DeleteFile(_ context.Context, req models.DeleteFileRequest) (models.FileCommitResponse, error) {
	p, err := cleanMemoryPath(req.Path)
	if err != nil {
		return models.FileCommitResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.files[p]
	switch {
	case !exists:
		return models.FileCommitResponse{}, fmt.Errorf("%w: %s", ErrNotFound, p)
	case req.SHA == "":
		return models.FileCommitResponse{}, fmt.Errorf("%w: \"sha\" wasn't supplied", ErrConflict)
	case req.SHA != current.sha:
		return models.FileCommitResponse{}, fmt.Errorf("%w: %s does not match %s", ErrConflict, p, req.SHA)
	}

	delete(m.files, p)

	return models.FileCommitResponse{Commit: m.nextCommitLocked(req.Message)}, nil
}

func (m *memoryContentBackend) isDirLocked(p string) bool {
	prefix := p + "/"
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (m *memoryContentBackend) nextCommitLocked(message string) models.CommitInfo {
	m.commits++
	sum := sha1.Sum([]byte(strconv.Itoa(m.commits) + "\x00" + message))
	return models.CommitInfo{SHA: hex.EncodeToString(sum[:]), Message: message}
}

func cleanMemoryPath(p string) (string, error) {
	p = strings.Trim(p, "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, s := range strings.Split(p, "/") {
		if s == "" || s == "." || s == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return p, nil
}

// gitBlobSHA returns the object id git assigns to a blob with data.
func gitBlobSHA(data []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(data))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func wrapLines(s string, width int) string {
	if len(s) <= width {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/width)
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
