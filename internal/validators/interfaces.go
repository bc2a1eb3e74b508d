// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks uploads before any key is derived or any byte
// leaves the process: scope id shape, content type allow-list, per-file size
// and scope quota.
//
// Field names passed to Validate narrow the run to those checks, in the
// order given. With no field names every check runs.
package validators

import "context"

// Validator validates a value, optionally restricted to named fields.
// The first failing check is returned.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

var _ Validator = (*UploadValidator)(nil)
