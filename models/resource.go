// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/base64"
	"io"
	"sync"
)

// Resource is a decrypted object held in memory. It is valid until Release
// is called; after that every accessor returns empty values.
type Resource struct {
	path     string
	mimeType string

	mu       sync.RWMutex
	data     []byte
	released bool
}

// NewResource wraps data. The slice is owned by the resource from now on.
func NewResource(path, mimeType string, data []byte) *Resource {
	return &Resource{path: path, mimeType: mimeType, data: data}
}

func (r *Resource) Path() string     { return r.path }
func (r *Resource) MIMEType() string { return r.mimeType }

// Size returns the plaintext length, or 0 after Release.
func (r *Resource) Size() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.data))
}

// Bytes returns a copy of the plaintext.
func (r *Resource) Bytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.released {
		return nil
	}
	return bytes.Clone(r.data)
}

// Reader returns a reader over a snapshot of the plaintext.
func (r *Resource) Reader() io.Reader {
	return bytes.NewReader(r.Bytes())
}

// DataURL renders the resource as a data: URL for embedding in a page.
func (r *Resource) DataURL() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.released {
		return ""
	}
	return "data:" + r.mimeType + ";base64," + base64.StdEncoding.EncodeToString(r.data)
}

// Release zeroes and drops the plaintext. Safe to call more than once.
func (r *Resource) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	clear(r.data)
	r.data = nil
	r.released = true
}
