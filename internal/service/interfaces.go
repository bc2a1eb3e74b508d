package service

import (
	"context"
	"time"

	"github.com/wavrons/stargate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VaultService encrypts images client-side and stores them in the object
// store. It keeps no state between calls apart from the object store's
// revision cache.
type VaultService interface {
	// Upload validates, encrypts and commits req.Data under a freshly
	// generated path inside the scope.
	Upload(ctx context.Context, req models.UploadRequest) (models.UploadResult, error)

	// Download fetches and decrypts the object at objectPath. The caller owns
	// the returned resource and must Release it.
	Download(ctx context.Context, scopeID, objectPath string) (*models.Resource, error)

	// Delete removes the object at objectPath. A missing object is not an
	// error.
	Delete(ctx context.Context, scopeID, objectPath string) error
}

// LibraryService combines [VaultService] with the vault entry ledger for the
// HTTP API and the CLI.
type LibraryService interface {
	Add(ctx context.Context, req models.UploadRequest) (models.VaultEntry, error)
	List(ctx context.Context, scopeID string) ([]models.VaultEntry, error)
	Usage(ctx context.Context, scopeID string) (models.ScopeUsage, error)
	Fetch(ctx context.Context, scopeID, objectPath string) (*models.Resource, error)
	// Entry returns the ledger row of objectPath, or [store.ErrEntryNotFound].
	Entry(ctx context.Context, scopeID, objectPath string) (models.VaultEntry, error)
	Remove(ctx context.Context, scopeID, objectPath string) error

	// ObjectPath resolves an object name relative to the scope directory.
	ObjectPath(scopeID, objectName string) string
}

// TokenService wraps the backend access token under a PIN.
type TokenService interface {
	Seal(ctx context.Context, pin, token string) (string, error)
	Open(ctx context.Context, pin, envelope string) (string, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, caller string, ttl time.Duration) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string

	// GetLimits lets a client reject an upload before sending it.
	GetLimits(ctx context.Context) models.VaultLimits
}
