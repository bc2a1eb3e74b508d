package validators

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavrons/stargate/models"
)

const mib = 1 << 20

func newRequest(size int, contentType string) models.UploadRequest {
	return models.UploadRequest{
		ScopeID:     "trip-42",
		FileName:    "photo.jpg",
		ContentType: contentType,
		Data:        bytes.Repeat([]byte{1}, size),
	}
}

func TestNewUploadValidator_Defaults(t *testing.T) {
	v := NewUploadValidator(nil, 0, -1)

	assert.Equal(t, DefaultMaxFileSize, v.MaxFileSize())
	assert.Equal(t, DefaultScopeQuota, v.ScopeQuota())
	assert.True(t, v.Accepts("image/heic"))
	assert.False(t, v.Accepts("image/svg+xml"))
}

func TestUploadValidator_Accepts(t *testing.T) {
	v := NewUploadValidator(nil, 0, 0)

	assert.True(t, v.Accepts("image/jpeg"))
	assert.True(t, v.Accepts("IMAGE/PNG"))
	assert.True(t, v.Accepts("image/webp; q=0.9"))
	assert.False(t, v.Accepts("application/pdf"))
	assert.False(t, v.Accepts(""))
}

func TestUploadValidator_Validate(t *testing.T) {
	v := NewUploadValidator(nil, 0, 0)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.UploadRequest
		wantErr error
	}{
		{name: "ok", req: newRequest(3, "image/jpeg")},
		{name: "exactly max size", req: newRequest(10*mib, "image/png")},
		{name: "unsupported type", req: newRequest(3, "application/pdf"), wantErr: ErrUnsupportedFileType},
		{name: "too large", req: newRequest(10*mib+1, "image/png"), wantErr: ErrFileTooLarge},
		{name: "empty scope", req: func() models.UploadRequest {
			r := newRequest(1, "image/png")
			r.ScopeID = " "
			return r
		}(), wantErr: ErrEmptyScopeID},
		{name: "scope with slash", req: func() models.UploadRequest {
			r := newRequest(1, "image/png")
			r.ScopeID = "../other"
			return r
		}(), wantErr: ErrInvalidScopeID},
		{name: "type checked before size", req: newRequest(11*mib, "text/plain"), wantErr: ErrUnsupportedFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUploadValidator_Quota(t *testing.T) {
	v := NewUploadValidator(nil, 10*mib, 100*mib)
	ctx := context.Background()

	req := newRequest(10*mib, "image/jpeg")
	req.StorageUsed = 95 * mib

	err := v.Validate(ctx, &req)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	var qe *QuotaExceededError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, int64(5*mib), qe.Remaining)
	assert.Equal(t, int64(95*mib), qe.Used)
	assert.Equal(t, int64(100*mib), qe.Limit)
	assert.Equal(t, int64(10*mib), qe.Size)

	small := newRequest(4*mib, "image/jpeg")
	small.StorageUsed = 95 * mib
	assert.NoError(t, v.Validate(ctx, &small))
}

func TestUploadValidator_QuotaOverrideAndOverdrawn(t *testing.T) {
	v := NewUploadValidator(nil, 0, 0)

	req := newRequest(2, "image/gif")
	req.StorageLimit = 10
	req.StorageUsed = 12

	err := v.Validate(context.Background(), req)

	var qe *QuotaExceededError
	require.ErrorAs(t, err, &qe)
	assert.Zero(t, qe.Remaining)
	assert.Equal(t, int64(10), qe.Limit)
}

func TestUploadValidator_FieldScoping(t *testing.T) {
	v := NewUploadValidator(nil, 0, 0)
	req := newRequest(3, "application/pdf")

	assert.NoError(t, v.Validate(context.Background(), req, FieldFileSize, FieldQuota))
	assert.ErrorIs(t, v.Validate(context.Background(), req, "colour"), ErrUnknownField)
}

func TestUploadValidator_UnsupportedObject(t *testing.T) {
	v := NewUploadValidator(nil, 0, 0)

	assert.ErrorIs(t, v.Validate(context.Background(), "nope"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.UploadRequest)(nil)), ErrUnsupportedType)
}

func TestTypedErrors_Messages(t *testing.T) {
	assert.Contains(t, (&UnsupportedFileTypeError{ContentType: "text/plain"}).Error(), "text/plain")
	assert.Contains(t, (&FileTooLargeError{Size: 11, Limit: 10}).Error(), "11 bytes exceeds 10")
	assert.Contains(t, (&QuotaExceededError{Remaining: 5, Size: 9}).Error(), "5 bytes remaining")
}

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, "image/png", NormalizeContentType("Image/PNG; charset=binary"))
	assert.Equal(t, "???", NormalizeContentType(" ??? "))
}
