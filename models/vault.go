// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ProgressStage names a milestone of an upload.
type ProgressStage string

const (
	ProgressRead      ProgressStage = "read"
	ProgressEncrypted ProgressStage = "encrypted"
	ProgressEncoded   ProgressStage = "encoded"
	ProgressCommitted ProgressStage = "committed"
)

// ProgressFunc receives upload milestones with a percentage in 0..100.
// Percentages are non-decreasing for a single upload.
type ProgressFunc func(stage ProgressStage, percent int)

// UploadRequest describes a single file to store in a scope.
//
// StorageUsed and StorageLimit come from the caller's own accounting; the
// vault only compares them against the plaintext size. A zero StorageLimit
// selects the default per-scope quota.
type UploadRequest struct {
	ScopeID     string
	FileName    string
	ContentType string
	Data        []byte

	StorageUsed  int64
	StorageLimit int64

	Progress ProgressFunc
}

// UploadResult is returned by a successful upload. SizeBytes is the plaintext
// size and is what callers should add to their usage counter.
type UploadResult struct {
	Path        string `json:"path"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

// VaultEntry is the local record of an uploaded object.
type VaultEntry struct {
	ID          string    `json:"id"`
	ScopeID     string    `json:"scope_id"`
	Path        string    `json:"path"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScopeUsage summarises the plaintext bytes stored for a scope.
type ScopeUsage struct {
	ScopeID        string `json:"scope_id"`
	UsedBytes      int64  `json:"used_bytes"`
	LimitBytes     int64  `json:"limit_bytes"`
	RemainingBytes int64  `json:"remaining_bytes"`
}

// VaultLimits tells a client what an upload must satisfy before it is sent.
type VaultLimits struct {
	MaxFileSizeBytes int64    `json:"max_file_size_bytes"`
	ScopeQuotaBytes  int64    `json:"scope_quota_bytes"`
	AcceptedTypes    []string `json:"accepted_types"`
}
