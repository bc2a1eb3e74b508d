// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when neither a router nor a listen
// address is available for the image API.
var errNoServersAreCreated = errors.New("image API server is not configured")
