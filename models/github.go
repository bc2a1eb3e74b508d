// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ContentFile is the subset of a GitHub Contents API file object the vault
// reads. Content is Base64 and may be wrapped at 60 characters.
type ContentFile struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// FileContentsRequest is the body of PUT /repos/{owner}/{repo}/contents/{path}.
// SHA must carry the blob SHA when the file already exists.
type FileContentsRequest struct {
	Path    string `json:"-"`
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// DeleteFileRequest is the body of DELETE /repos/{owner}/{repo}/contents/{path}.
type DeleteFileRequest struct {
	Path    string `json:"-"`
	Message string `json:"message"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch,omitempty"`
}

// CommitInfo identifies the commit produced by a write.
type CommitInfo struct {
	SHA     string `json:"sha"`
	Message string `json:"message,omitempty"`
}

// FileCommitResponse is returned by both create/update and delete. Content is
// nil after a delete.
type FileCommitResponse struct {
	Content *ContentFile `json:"content"`
	Commit  CommitInfo   `json:"commit"`
}
