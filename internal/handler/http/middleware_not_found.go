// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// notFound answers unknown routes and unsupported methods alike with 404 and
// the JSON error body. Registered as both NotFound and MethodNotAllowed so
// callers cannot probe which routes exist.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, "notFound", ErrRouteNotFound)
}
