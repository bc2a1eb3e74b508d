// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RemoteObject is an object fetched from the remote store. Content is the
// Base64 transport text exactly as stored; Revision is the opaque token
// required to overwrite or delete it.
type RemoteObject struct {
	Path     string
	Content  string
	Revision string
}
