// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/service"
)

// maxUploadMemory bounds the multipart form kept in memory. Larger parts
// spill to temporary files.
const maxUploadMemory = 32 << 20

// multipartOverhead is allowed on top of the per-file limit for form framing.
const multipartOverhead = 1 << 20

// Handler serves the image vault REST API on top of [service.Services].
type Handler struct {
	services *service.Services

	// maxBodyBytes caps the upload request body. Zero disables the cap.
	maxBodyBytes int64

	// requestTimeout bounds a single request. Zero disables it.
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler creates a Handler. cfg may be nil, in which case no body cap
// or request timeout is applied.
func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services: services,
		logger:   logger,
	}
	if cfg != nil {
		if cfg.Vault.MaxFileSize > 0 {
			h.maxBodyBytes = cfg.Vault.MaxFileSize + multipartOverhead
		}
		h.requestTimeout = cfg.Server.RequestTimeout
	}

	return h
}
