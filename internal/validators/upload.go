package validators

import (
	"context"
	"fmt"
	"mime"
	"slices"
	"strings"

	"github.com/wavrons/stargate/models"
)

// Field name constants restrict [UploadValidator.Validate] to a subset of
// checks. Checks always run in this order, which is also the order in which
// a caller sees the first failure.
const (
	FieldScopeID     = "scope_id"
	FieldContentType = "content_type"
	FieldFileSize    = "file_size"
	FieldQuota       = "quota"
)

var defaultUploadFields = []string{FieldScopeID, FieldContentType, FieldFileSize, FieldQuota}

// AcceptedImageTypes is the default upload allow-list.
var AcceptedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/heic",
	"image/heif",
	"image/bmp",
}

const (
	DefaultMaxFileSize int64 = 10 << 20
	DefaultScopeQuota  int64 = 100 << 20
)

// UploadValidator enforces the allow-list, per-file limit and scope quota on
// [models.UploadRequest]. It never touches the network.
type UploadValidator struct {
	acceptedTypes []string
	maxFileSize   int64
	scopeQuota    int64
}

// NewUploadValidator constructs an [UploadValidator]. Non-positive limits and
// an empty allow-list select the defaults.
func NewUploadValidator(acceptedTypes []string, maxFileSize, scopeQuota int64) *UploadValidator {
	if len(acceptedTypes) == 0 {
		acceptedTypes = AcceptedImageTypes
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if scopeQuota <= 0 {
		scopeQuota = DefaultScopeQuota
	}

	return &UploadValidator{
		acceptedTypes: acceptedTypes,
		maxFileSize:   maxFileSize,
		scopeQuota:    scopeQuota,
	}
}

// MaxFileSize returns the per-file limit in bytes.
func (v *UploadValidator) MaxFileSize() int64 { return v.maxFileSize }

// ScopeQuota returns the default per-scope limit in bytes.
func (v *UploadValidator) ScopeQuota() int64 { return v.scopeQuota }

// Accepts reports whether contentType is on the allow-list. Parameters such
// as "; charset=" are ignored.
func (v *UploadValidator) Accepts(contentType string) bool {
	return slices.Contains(v.acceptedTypes, NormalizeContentType(contentType))
}

// Validate implements [Validator] for models.UploadRequest and
// *models.UploadRequest.
func (v *UploadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UploadRequest:
		return v.validateUploadRequest(ctx, &value, fields...)
	case *models.UploadRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateUploadRequest(ctx, value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UploadValidator) validateUploadRequest(_ context.Context, req *models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = defaultUploadFields
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldScopeID:
			err = validateScopeID(req.ScopeID)
		case FieldContentType:
			if !v.Accepts(req.ContentType) {
				err = &UnsupportedFileTypeError{ContentType: req.ContentType}
			}
		case FieldFileSize:
			if size := int64(len(req.Data)); size > v.maxFileSize {
				err = &FileTooLargeError{Size: size, Limit: v.maxFileSize}
			}
		case FieldQuota:
			err = v.checkQuota(req)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *UploadValidator) checkQuota(req *models.UploadRequest) error {
	limit := req.StorageLimit
	if limit <= 0 {
		limit = v.scopeQuota
	}

	size := int64(len(req.Data))
	if req.StorageUsed+size <= limit {
		return nil
	}

	return &QuotaExceededError{
		Remaining: max(0, limit-req.StorageUsed),
		Used:      req.StorageUsed,
		Limit:     limit,
		Size:      size,
	}
}

func validateScopeID(scopeID string) error {
	switch {
	case strings.TrimSpace(scopeID) == "":
		return ErrEmptyScopeID
	case strings.ContainsAny(scopeID, `/\`), scopeID == ".", scopeID == "..":
		return fmt.Errorf("%w: %q", ErrInvalidScopeID, scopeID)
	}
	return nil
}

// NormalizeContentType lower-cases a media type and drops its parameters.
// Unparseable input is returned trimmed and lower-cased.
func NormalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
