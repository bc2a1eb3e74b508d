// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wavrons/stargate/internal/codec"
	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/crypto"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/internal/utils"
	"github.com/wavrons/stargate/internal/validators"
	"github.com/wavrons/stargate/models"
)

const (
	// DefaultImageRoot is the repository directory objects live under.
	DefaultImageRoot = "data/images"

	tracerName = "github.com/wavrons/stargate/internal/service"
)

// vaultService is the default [VaultService].
//
// Upload: validate → derive scope key → encrypt → encode → Put at a new path.
// Download: Get → decode → derive scope key → decrypt.
// The scope key is dropped as soon as the call that needed it returns.
type vaultService struct {
	objects   store.ObjectStore
	keyChain  *crypto.ScopeKeyChain
	validator *validators.UploadValidator
	ids       utils.IDGenerator
	imageRoot string
	tracer    trace.Tracer

	logger *logger.Logger
}

// NewVaultService wires a [VaultService] to an object store and a key chain.
// Limits and the image root come from cfg; zero values select the defaults.
func NewVaultService(objects store.ObjectStore, keyChain *crypto.ScopeKeyChain, cfg config.Vault, logger *logger.Logger) VaultService {
	imageRoot := strings.Trim(cfg.ImageRoot, "/")
	if imageRoot == "" {
		imageRoot = DefaultImageRoot
	}

	return &vaultService{
		objects:   objects,
		keyChain:  keyChain,
		validator: validators.NewUploadValidator(nil, cfg.MaxFileSize, cfg.ScopeQuota),
		ids:       utils.NewUUIDGenerator(),
		imageRoot: imageRoot,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Upload implements [VaultService]. Validation failures are reported before
// any key derivation or network call.
func (s *vaultService) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResult, error) {
	ctx, span := s.tracer.Start(ctx, "VaultService.Upload", trace.WithAttributes(
		attribute.String("vault.scope_id", req.ScopeID),
		attribute.Int("vault.size_bytes", len(req.Data)),
	))
	defer span.End()

	log := logger.FromContext(ctx).With().Str("func", "vaultService.Upload").Str("scope_id", req.ScopeID).Logger()

	if strings.TrimSpace(req.ContentType) == "" {
		req.ContentType = declaredTypeFor(req.FileName, req.Data)
		log.Debug().Str("content_type", req.ContentType).Msg("content type inferred")
	}
	req.ContentType = validators.NormalizeContentType(req.ContentType)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Msg("upload rejected")
		recordError(span, err)
		return models.UploadResult{}, err
	}
	report(req.Progress, models.ProgressRead, 30)

	key := s.keyChain.DeriveScopeKey(req.ScopeID)
	blob, err := s.keyChain.Provider().Encrypt(key, req.Data)
	clear(key)
	if err != nil {
		log.Err(err).Msg("error encrypting image")
		recordError(span, err)
		return models.UploadResult{}, fmt.Errorf("encrypt image: %w", err)
	}
	report(req.Progress, models.ProgressEncrypted, 60)

	content := codec.ToTransportText(blob)
	report(req.Progress, models.ProgressEncoded, 75)

	objectPath := path.Join(s.scopeDir(req.ScopeID), s.ids.Generate()+"."+objectExtension(req.FileName)+EncryptedSuffix)
	message := fmt.Sprintf("Upload image: %s [trip:%s]", req.FileName, req.ScopeID)

	if _, err = s.objects.Put(ctx, objectPath, content, "", store.WithMessage(message)); err != nil {
		log.Err(err).Str("path", objectPath).Msg("error committing image")
		recordError(span, err)
		return models.UploadResult{}, err
	}
	report(req.Progress, models.ProgressCommitted, 100)

	span.SetAttributes(attribute.String("vault.path", objectPath))
	log.Info().Str("path", objectPath).Int("size_bytes", len(req.Data)).Msg("image uploaded")

	return models.UploadResult{
		Path:        objectPath,
		SizeBytes:   int64(len(req.Data)),
		ContentType: req.ContentType,
	}, nil
}

// Download implements [VaultService]. [crypto.ErrAuthenticationFailed] is
// returned unchanged for a wrong key or corrupted object.
func (s *vaultService) Download(ctx context.Context, scopeID, objectPath string) (*models.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "VaultService.Download", trace.WithAttributes(
		attribute.String("vault.scope_id", scopeID),
		attribute.String("vault.path", objectPath),
	))
	defer span.End()

	log := logger.FromContext(ctx).With().Str("func", "vaultService.Download").Str("path", objectPath).Logger()

	if err := s.checkScopePath(scopeID, objectPath); err != nil {
		recordError(span, err)
		return nil, err
	}

	obj, err := s.objects.Get(ctx, objectPath)
	if err != nil {
		log.Err(err).Msg("error fetching image")
		recordError(span, err)
		return nil, err
	}

	blob, err := codec.FromTransportText(obj.Content)
	if err != nil {
		err = fmt.Errorf("%w: %w", crypto.ErrAuthenticationFailed, err)
		recordError(span, err)
		return nil, err
	}

	key := s.keyChain.DeriveScopeKey(scopeID)
	plaintext, err := s.keyChain.Provider().Decrypt(key, blob)
	clear(key)
	if err != nil {
		log.Warn().Err(err).Msg("error decrypting image")
		recordError(span, err)
		return nil, err
	}

	return models.NewResource(objectPath, MIMETypeForPath(objectPath), plaintext), nil
}

// Delete implements [VaultService]. No key is derived.
func (s *vaultService) Delete(ctx context.Context, scopeID, objectPath string) error {
	ctx, span := s.tracer.Start(ctx, "VaultService.Delete", trace.WithAttributes(
		attribute.String("vault.scope_id", scopeID),
		attribute.String("vault.path", objectPath),
	))
	defer span.End()

	log := logger.FromContext(ctx).With().Str("func", "vaultService.Delete").Str("path", objectPath).Logger()

	if err := s.checkScopePath(scopeID, objectPath); err != nil {
		recordError(span, err)
		return err
	}

	err := s.objects.Delete(ctx, objectPath, "", store.WithMessage("Delete image: "+objectPath))
	switch {
	case errors.Is(err, store.ErrObjectNotFound):
		log.Debug().Msg("image already absent")
		return nil
	case err != nil:
		log.Err(err).Msg("error deleting image")
		recordError(span, err)
		return err
	}

	log.Info().Msg("image deleted")
	return nil
}

func (s *vaultService) scopeDir(scopeID string) string {
	return s.imageRoot + "/" + scopeID
}

// checkScopePath accepts only "<imageRoot>/<scopeID>/<name>" with a clean,
// non-empty name.
func (s *vaultService) checkScopePath(scopeID, objectPath string) error {
	if err := s.validator.Validate(context.Background(), models.UploadRequest{ScopeID: scopeID}, validators.FieldScopeID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	prefix := s.scopeDir(scopeID) + "/"
	name, ok := strings.CutPrefix(objectPath, prefix)
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q is outside %q", ErrInvalidPath, objectPath, prefix)
	}

	return nil
}

func report(progress models.ProgressFunc, stage models.ProgressStage, percent int) {
	if progress != nil {
		progress(stage, percent)
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
