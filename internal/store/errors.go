package store

import "errors"

// Sentinel errors returned by storage methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by [KVStore.Get] when the requested key has
	// no stored value. Absence of a key is an expected outcome for many
	// engine reads (no draft to recover) and must be matched explicitly.
	ErrKeyNotFound = errors.New("key not found")

	// ErrDraftNotFound is returned when a query or mutation targets a draft
	// (by draft_id or draft_key) that does not exist in the database.
	ErrDraftNotFound = errors.New("draft was not found")

	// ErrDraftNotSaved is returned when an upsert completes without error but
	// the number of affected rows is zero, indicating that no data was
	// actually persisted.
	ErrDraftNotSaved = errors.New("draft was not saved")

	// ErrOperationAlreadyApplied is returned when a batch-sync operation's
	// idempotency key is already recorded in the applied-operations journal.
	// The caller should treat the operation as successfully applied: replays
	// must not produce duplicate server effects.
	ErrOperationAlreadyApplied = errors.New("operation already applied")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan draft row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan draft rows")
)
