package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wavrons/stargate/internal/config"
	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/mock"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/internal/workers"
	"github.com/wavrons/stargate/models"
)

const testObjectPath = "data/images/trip-42/0b6c.jpg.enc"

func testCLI(failFast bool) *cli {
	return &cli{
		out:      &bytes.Buffer{},
		log:      logger.Nop(),
		cfg:      &config.StructuredConfig{Vault: config.Vault{Workers: 1}},
		failFast: failFast,
	}
}

func photo() *models.Resource {
	return models.NewResource(testObjectPath, "image/jpeg", []byte{1, 2, 3})
}

// ── download ─────────────────────────────────────────────────────────────────

func TestDownloadObject_UsesObjectName(t *testing.T) {
	library := mock.NewMockLibraryService(gomock.NewController(t))
	dir := t.TempDir()

	library.EXPECT().Fetch(gomock.Any(), "trip-42", testObjectPath).Return(photo(), nil)

	got, err := testCLI(false).downloadObject(context.Background(), library, "trip-42", testObjectPath, dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "0b6c.jpg"), got.File)

	data, err := os.ReadFile(got.File)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestDownloadObject_OriginalNames(t *testing.T) {
	library := mock.NewMockLibraryService(gomock.NewController(t))
	dir := t.TempDir()
	ctx := context.Background()
	c := testCLI(false)

	library.EXPECT().Fetch(gomock.Any(), "trip-42", testObjectPath).Return(photo(), nil)
	library.EXPECT().Entry(gomock.Any(), "trip-42", testObjectPath).Return(models.VaultEntry{FileName: "photo.jpg"}, nil)

	got, err := c.downloadObject(ctx, library, "trip-42", testObjectPath, dir, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.jpg"), got.File)

	// a second copy under the same name is refused
	library.EXPECT().Fetch(gomock.Any(), "trip-42", testObjectPath).Return(photo(), nil)
	library.EXPECT().Entry(gomock.Any(), "trip-42", testObjectPath).Return(models.VaultEntry{FileName: "photo.jpg"}, nil)

	_, err = c.downloadObject(ctx, library, "trip-42", testObjectPath, dir, true)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestDownloadObject_OriginalNameFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		entry    models.VaultEntry
		entryErr error
	}{
		{name: "no ledger row", entryErr: store.ErrEntryNotFound},
		{name: "ledger error", entryErr: store.ErrExecutingQuery},
		{name: "parent directory", entry: models.VaultEntry{FileName: ".."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			library := mock.NewMockLibraryService(gomock.NewController(t))
			dir := t.TempDir()

			library.EXPECT().Fetch(gomock.Any(), "trip-42", testObjectPath).Return(photo(), nil)
			library.EXPECT().Entry(gomock.Any(), "trip-42", testObjectPath).Return(tt.entry, tt.entryErr)

			got, err := testCLI(false).downloadObject(context.Background(), library, "trip-42", testObjectPath, dir, true)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "0b6c.jpg"), got.File)
		})
	}
}

func TestFetchDataURL(t *testing.T) {
	library := mock.NewMockLibraryService(gomock.NewController(t))

	library.EXPECT().ObjectPath("trip-42", "0b6c.jpg.enc").Return(testObjectPath)
	library.EXPECT().Fetch(gomock.Any(), "trip-42", testObjectPath).Return(photo(), nil)

	got, err := testCLI(false).fetchDataURL(context.Background(), library, "trip-42", "0b6c.jpg.enc")
	require.NoError(t, err)
	assert.Equal(t, downloaded{Object: "0b6c.jpg.enc", DataURL: "data:image/jpeg;base64,AQID"}, got)
}

// ── batches ──────────────────────────────────────────────────────────────────

func TestRunBatch(t *testing.T) {
	boom := errors.New("boom")

	t.Run("runs every job", func(t *testing.T) {
		var ran atomic.Int32
		jobs := []workers.Worker{
			workers.WorkerFunc(func(context.Context) error { ran.Add(1); return boom }),
			workers.WorkerFunc(func(context.Context) error { ran.Add(1); return nil }),
		}

		errs := testCLI(false).runBatch(context.Background(), jobs)
		assert.ErrorIs(t, errs[0], boom)
		assert.NoError(t, errs[1])
		assert.Equal(t, int32(2), ran.Load())
	})

	t.Run("fail fast", func(t *testing.T) {
		var lastRan atomic.Bool
		jobs := []workers.Worker{
			workers.WorkerFunc(func(context.Context) error { return nil }),
			workers.WorkerFunc(func(context.Context) error { return boom }),
			workers.WorkerFunc(func(context.Context) error { lastRan.Store(true); return nil }),
		}

		errs := testCLI(true).runBatch(context.Background(), jobs)
		assert.NoError(t, errs[0])
		assert.ErrorIs(t, errs[1], boom)
		assert.ErrorIs(t, errs[2], errSkipped)
		assert.False(t, lastRan.Load())
	})
}

func TestReport_CountsSkipped(t *testing.T) {
	c := testCLI(true)
	items := []string{"a.jpg", "b.jpg"}

	err := c.report(items, []error{nil, errSkipped}, func(i int) any { return items[i] }, func(i int) string { return items[i] })
	assert.ErrorIs(t, err, errBatchFailed)
	assert.Equal(t, "a.jpg\n", c.out.(*bytes.Buffer).String())
}
