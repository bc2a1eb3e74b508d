// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/service"
	"github.com/wavrons/stargate/internal/utils"
	"github.com/wavrons/stargate/models"
)

const (
	scopeIDParam    = "scopeID"
	objectNameParam = "objectName"
	uploadFormField = "file"
)

func (h *Handler) listImages(w http.ResponseWriter, r *http.Request) {
	scopeID := chi.URLParam(r, scopeIDParam)

	entries, err := h.services.LibraryService.List(r.Context(), scopeID)
	if err != nil {
		writeError(w, r, "*Handler.listImages", err)
		return
	}

	if _, err = utils.WriteJSON(w, entries, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listImages").Msg("error writing response")
	}
}

// uploadImage accepts a multipart form with a single "file" part. The part's
// Content-Type is used when it is specific; otherwise the type is sniffed.
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	scopeID := chi.URLParam(r, scopeIDParam)

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooBig *http.MaxBytesError
		if !errors.As(err, &tooBig) {
			err = fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
		}
		writeError(w, r, "*Handler.uploadImage", err)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, ErrNoFileProvided)
		}
		writeError(w, r, "*Handler.uploadImage", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, "*Handler.uploadImage", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "application/octet-stream" {
		contentType = ""
	}

	entry, err := h.services.LibraryService.Add(r.Context(), models.UploadRequest{
		ScopeID:     scopeID,
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	clear(data)
	if err != nil {
		writeError(w, r, "*Handler.uploadImage", err)
		return
	}

	caller, _ := utils.GetCallerFromContext(r.Context())
	log.Info().
		Str("func", "*Handler.uploadImage").
		Str("caller", caller).
		Str("scope_id", scopeID).
		Str("path", entry.Path).
		Int64("size_bytes", entry.SizeBytes).
		Msg("image uploaded")

	result := models.UploadResult{
		Path:        entry.Path,
		SizeBytes:   entry.SizeBytes,
		ContentType: entry.ContentType,
	}
	if _, err = utils.WriteJSON(w, result, http.StatusCreated); err != nil {
		log.Err(err).Str("func", "*Handler.uploadImage").Msg("error writing response")
	}
}

// downloadImage streams the decrypted image. The plaintext is zeroed as soon
// as it has been written.
func (h *Handler) downloadImage(w http.ResponseWriter, r *http.Request) {
	scopeID := chi.URLParam(r, scopeIDParam)
	objectPath := h.services.LibraryService.ObjectPath(scopeID, chi.URLParam(r, objectNameParam))

	resource, err := h.services.LibraryService.Fetch(r.Context(), scopeID, objectPath)
	if err != nil {
		writeError(w, r, "*Handler.downloadImage", err)
		return
	}
	defer resource.Release()

	data := resource.Bytes()
	defer clear(data)

	w.Header().Set("Content-Type", resource.MIMEType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.downloadImage").Msg("error writing image")
	}
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	scopeID := chi.URLParam(r, scopeIDParam)
	objectPath := h.services.LibraryService.ObjectPath(scopeID, chi.URLParam(r, objectNameParam))

	if err := h.services.LibraryService.Remove(r.Context(), scopeID, objectPath); err != nil {
		writeError(w, r, "*Handler.deleteImage", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) scopeUsage(w http.ResponseWriter, r *http.Request) {
	scopeID := chi.URLParam(r, scopeIDParam)

	usage, err := h.services.LibraryService.Usage(r.Context(), scopeID)
	if err != nil {
		writeError(w, r, "*Handler.scopeUsage", err)
		return
	}

	if _, err = utils.WriteJSON(w, usage, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.scopeUsage").Msg("error writing response")
	}
}
