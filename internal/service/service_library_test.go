package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/mock"
	"github.com/wavrons/stargate/internal/service"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/models"
)

func newLibraryFixture(t *testing.T, cfg config.Vault) (service.LibraryService, *mock.MockVaultEntryRepository, *vaultFixture) {
	t.Helper()
	ctrl := gomock.NewController(t)
	entries := mock.NewMockVaultEntryRepository(ctrl)
	f := newVaultFixture(t, cfg)
	return service.NewLibraryService(f.vault, entries, cfg, logger.Nop()), entries, f
}

// ── Add ──────────────────────────────────────────────────────────────────────

func TestLibraryService_Add_RecordsEntry(t *testing.T) {
	lib, entries, _ := newLibraryFixture(t, config.Vault{})
	ctx := context.Background()

	entries.EXPECT().ScopeUsage(ctx, "trip-1").Return(int64(100), nil)
	entries.EXPECT().SaveEntry(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e models.VaultEntry) error {
		assert.Equal(t, "trip-1", e.ScopeID)
		assert.Equal(t, "Beach.JPG", e.FileName)
		assert.Equal(t, "image/jpeg", e.ContentType)
		assert.Equal(t, int64(3), e.SizeBytes)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
		return nil
	})

	entry, err := lib.Add(ctx, jpegRequest("trip-1", []byte{1, 2, 3}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entry.Path, "data/images/trip-1/"))
}

func TestLibraryService_Add_UsesRecordedUsageForQuota(t *testing.T) {
	lib, entries, _ := newLibraryFixture(t, config.Vault{ScopeQuota: 10})
	ctx := context.Background()

	entries.EXPECT().ScopeUsage(ctx, "trip-1").Return(int64(8), nil)

	_, err := lib.Add(ctx, jpegRequest("trip-1", []byte{1, 2, 3}))
	var quotaErr *service.QuotaExceededError
	require.True(t, errors.As(err, &quotaErr))
	assert.Equal(t, int64(2), quotaErr.Remaining)
	assert.Equal(t, int64(10), quotaErr.Limit)
}

func TestLibraryService_Add_UsageError(t *testing.T) {
	lib, entries, _ := newLibraryFixture(t, config.Vault{})
	entries.EXPECT().ScopeUsage(gomock.Any(), "trip-1").Return(int64(0), assert.AnError)

	_, err := lib.Add(context.Background(), jpegRequest("trip-1", []byte{1}))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLibraryService_Add_LedgerFailureRemovesObject(t *testing.T) {
	lib, entries, f := newLibraryFixture(t, config.Vault{})
	ctx := context.Background()

	var stored string
	entries.EXPECT().ScopeUsage(ctx, "trip-1").Return(int64(0), nil)
	entries.EXPECT().SaveEntry(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e models.VaultEntry) error {
		stored = e.Path
		return store.ErrEntryAlreadyExists
	})

	_, err := lib.Add(ctx, jpegRequest("trip-1", []byte{1}))
	require.ErrorIs(t, err, store.ErrEntryAlreadyExists)

	_, err = f.objects.Get(ctx, stored)
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

// ── Usage / List ─────────────────────────────────────────────────────────────

func TestLibraryService_Usage(t *testing.T) {
	lib, entries, _ := newLibraryFixture(t, config.Vault{ScopeQuota: 1000})

	entries.EXPECT().ScopeUsage(gomock.Any(), "trip-1").Return(int64(400), nil)
	u, err := lib.Usage(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, models.ScopeUsage{ScopeID: "trip-1", UsedBytes: 400, LimitBytes: 1000, RemainingBytes: 600}, u)

	entries.EXPECT().ScopeUsage(gomock.Any(), "trip-1").Return(int64(1500), nil)
	u, err = lib.Usage(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Zero(t, u.RemainingBytes)
}

func TestLibraryService_List(t *testing.T) {
	lib, entries, _ := newLibraryFixture(t, config.Vault{})
	want := []models.VaultEntry{{ID: "1", ScopeID: "trip-1"}}

	entries.EXPECT().ListEntries(gomock.Any(), "trip-1").Return(want, nil)

	got, err := lib.List(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ── Fetch / Remove ───────────────────────────────────────────────────────────

func TestLibraryService_FetchAndRemove(t *testing.T) {
	lib, entries, _ := newLibraryFixture(t, config.Vault{})
	ctx := context.Background()

	entries.EXPECT().ScopeUsage(ctx, "trip-1").Return(int64(0), nil)
	entries.EXPECT().SaveEntry(ctx, gomock.Any()).Return(nil)

	entry, err := lib.Add(ctx, jpegRequest("trip-1", []byte("pixels")))
	require.NoError(t, err)

	r, err := lib.Fetch(ctx, "trip-1", entry.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), r.Bytes())
	r.Release()
	assert.Nil(t, r.Bytes())

	entries.EXPECT().DeleteEntry(ctx, "trip-1", entry.Path).Return(nil)
	require.NoError(t, lib.Remove(ctx, "trip-1", entry.Path))

	// the object is gone; the ledger row is still forgotten
	entries.EXPECT().DeleteEntry(ctx, "trip-1", entry.Path).Return(nil)
	require.NoError(t, lib.Remove(ctx, "trip-1", entry.Path))
}

func TestLibraryService_Entry(t *testing.T) {
	lib, entries, _ := newLibraryFixture(t, config.Vault{})
	ctx := context.Background()
	want := models.VaultEntry{ID: "1", ScopeID: "trip-1", Path: "data/images/trip-1/a.jpg.enc", FileName: "beach.jpg"}

	entries.EXPECT().GetEntry(ctx, "trip-1", want.Path).Return(want, nil)
	got, err := lib.Entry(ctx, "trip-1", want.Path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries.EXPECT().GetEntry(ctx, "trip-1", "data/images/trip-1/missing.jpg.enc").Return(models.VaultEntry{}, store.ErrEntryNotFound)
	_, err = lib.Entry(ctx, "trip-1", "data/images/trip-1/missing.jpg.enc")
	assert.ErrorIs(t, err, store.ErrEntryNotFound)
}

func TestLibraryService_Remove_VaultErrorKeepsEntry(t *testing.T) {
	lib, _, _ := newLibraryFixture(t, config.Vault{})

	err := lib.Remove(context.Background(), "trip-1", "elsewhere/a.jpg.enc")
	assert.ErrorIs(t, err, service.ErrInvalidPath)
}

func TestLibraryService_ObjectPath(t *testing.T) {
	lib, _, _ := newLibraryFixture(t, config.Vault{ImageRoot: "vault/"})
	assert.Equal(t, "vault/trip-1/abc.jpg.enc", lib.ObjectPath("trip-1", "abc.jpg.enc"))
}
