package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/mock"
	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/models"
)

// ── classifier-driven error mapping ──────────────────────────────────────────

func TestVaultEntryRepository_UsesClassifier(t *testing.T) {
	driverErr := errors.New("driver says no")

	tests := []struct {
		name    string
		class   store.ErrorClassification
		wantErr error
	}{
		{name: "unique", class: store.UniqueViolation, wantErr: store.ErrEntryAlreadyExists},
		{name: "retryable", class: store.Retryable, wantErr: store.ErrLedgerBusy},
		{name: "other", class: store.NonRetryable, wantErr: store.ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, sqlMock, err := sqlmock.New()
			require.NoError(t, err)
			t.Cleanup(func() { _ = conn.Close() })

			classifier := mock.NewMockErrorClassificator(gomock.NewController(t))
			classifier.EXPECT().Classify(driverErr).Return(tt.class)

			repo := store.NewVaultEntryRepository(store.NewDB(conn, store.DialectSQLite, classifier, logger.Nop()), logger.Nop())
			sqlMock.ExpectExec("INSERT INTO vault_entries").WillReturnError(driverErr)

			err = repo.SaveEntry(context.Background(), models.VaultEntry{
				ID:        "id-1",
				ScopeID:   "trip-1",
				Path:      "data/images/trip-1/a.png.enc",
				CreatedAt: time.Now(),
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestNewDB_NilClassifier(t *testing.T) {
	conn, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := store.NewVaultEntryRepository(store.NewDB(conn, store.DialectPostgres, nil, logger.Nop()), logger.Nop())
	sqlMock.ExpectExec("DELETE FROM vault_entries").WillReturnError(errors.New("gone"))

	err = repo.DeleteEntry(context.Background(), "trip-1", "data/images/trip-1/a.png.enc")
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}
