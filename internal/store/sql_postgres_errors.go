package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the caller whether a failed database operation is
// worth retrying. The sync pipeline surfaces it to registers: retryable
// failures keep the operation queued, permanent ones drop it with an error
// result.
type ErrorClassification int

const (
	// NonRetryable marks failures that repeat deterministically, such as
	// constraint violations, data exceptions and bad SQL. It is also the
	// default for unrecognised errors.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures: lost connections, deadlock and
	// serialization rollbacks, a server that is still starting up.
	Retryable
)

// retryablePgCodes lists the PostgreSQL error codes treated as transient.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {}, // 08000
	pgerrcode.ConnectionDoesNotExist: {}, // 08003
	pgerrcode.ConnectionFailure:      {}, // 08006
	pgerrcode.TransactionRollback:    {}, // 40000
	pgerrcode.SerializationFailure:   {}, // 40001
	pgerrcode.DeadlockDetected:       {}, // 40P01
	pgerrcode.CannotConnectNow:       {}, // 57P03
}

// PostgresErrorClassifier implements [ErrorClassificator] over pgx driver
// errors.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err to *pgconn.PgError and looks its code up in
// [retryablePgCodes]. Everything else — nil errors, non-driver errors,
// unrecognised codes — is NonRetryable: when in doubt, the sync journal must
// not loop on an operation the database will keep rejecting.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	if _, transient := retryablePgCodes[pgErr.Code]; transient {
		return Retryable
	}
	return NonRetryable
}
