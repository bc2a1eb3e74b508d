package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells a ledger repository how to report a failed
// statement.
type ErrorClassification int

const (
	// NonRetryable failures are reported as query errors.
	NonRetryable ErrorClassification = iota

	// Retryable failures are transient (lost connection, lock contention,
	// serialization failure) and are reported as [ErrLedgerBusy].
	Retryable

	// UniqueViolation means a vault entry for the same path already exists.
	UniqueViolation
)

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not a
// *pgconn.PgError are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a PostgreSQL SQLSTATE to an [ErrorClassification].
// Connection exceptions (class 08), transaction rollbacks (class 40) and
// 57P03 are retryable; 23505 is a unique violation; the rest are not
// retryable.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code),
		pgErr.Code == pgerrcode.CannotConnectNow:
		return Retryable
	default:
		return NonRetryable
	}
}
