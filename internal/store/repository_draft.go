package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// draftRepository is the PostgreSQL-backed implementation of
// [DraftRepository]. It executes all draft CRUD operations against the
// "drafts" table and maintains the "applied_operations" idempotency journal
// using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (draft_key, device_id, op_id, etc.).
type draftRepository struct {
	*DB
	logger *logger.Logger
}

// NewDraftRepository constructs a [DraftRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewDraftRepository(db *DB, logger *logger.Logger) DraftRepository {
	return &draftRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertDraft inserts the draft or, when a row with the same draft_key
// already exists, overwrites it entirely (last writer wins). A completed
// row is reopened by the overwrite: a new save on the same key means the
// register started a new working cart under that identity.
//
// On success the returned draft carries the server-assigned DraftID and
// canonical SavedAt, with Local cleared.
func (p *draftRepository) UpsertDraft(ctx context.Context, draft models.Draft) (models.Draft, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(draft.Payload)
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.UpsertDraft").
			Str("draft_key", draft.DraftKey).
			Msg("failed to serialize draft payload")
		return models.Draft{}, fmt.Errorf("failed to serialize draft payload (draft_key=%s): %w", draft.DraftKey, err)
	}

	queryRowErr := p.DB.QueryRowContext(ctx, upsertDraft,
		draft.DraftKey,
		draft.DraftType,
		draft.DeviceID,
		draft.RegisterID,
		draft.UserID,
		payload,
		draft.ItemCount,
		draft.TotalCents,
		draft.CustomerName,
		draft.ExpiresAt,
	).Scan(&draft.DraftID, &draft.SavedAt)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "draftRepository.UpsertDraft").
			Str("draft_key", draft.DraftKey).
			Str("device_id", draft.DeviceID).
			Msg("failed to execute upsert for draft")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExecutingQuery, queryRowErr)
	}

	draft.Local = false
	draft.Completed = false

	log.Info().
		Str("func", "draftRepository.UpsertDraft").
		Str("draft_key", draft.DraftKey).
		Int64("draft_id", draft.DraftID).
		Msg("successfully upserted draft")

	return draft, nil
}

// GetDraftByID retrieves a single draft by its server-assigned id.
// Returns [ErrDraftNotFound] when no row matches.
func (p *draftRepository) GetDraftByID(ctx context.Context, draftID int64) (models.Draft, error) {
	log := logger.FromContext(ctx)

	var draft models.Draft
	var payload []byte

	scanErr := p.DB.QueryRowContext(ctx, getDraftByID, draftID).Scan(
		&draft.DraftID,
		&draft.DraftKey,
		&draft.DraftType,
		&draft.DeviceID,
		&draft.RegisterID,
		&draft.UserID,
		&payload,
		&draft.ItemCount,
		&draft.TotalCents,
		&draft.CustomerName,
		&draft.Completed,
		&draft.SavedAt,
		&draft.ExpiresAt,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return models.Draft{}, ErrDraftNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "draftRepository.GetDraftByID").
			Int64("draft_id", draftID).
			Msg("failed to query requested draft")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	if err := json.Unmarshal(payload, &draft.Payload); err != nil {
		log.Err(err).
			Str("func", "draftRepository.GetDraftByID").
			Int64("draft_id", draftID).
			Msg("failed to deserialize draft payload")
		return models.Draft{}, fmt.Errorf("failed to deserialize draft payload (draft_id=%d): %w", draftID, err)
	}

	return draft, nil
}

// GetDraftByKey retrieves a single draft by its stable draft_key.
// Returns [ErrDraftNotFound] when no row matches.
func (p *draftRepository) GetDraftByKey(ctx context.Context, draftKey string) (models.Draft, error) {
	log := logger.FromContext(ctx)

	var draft models.Draft
	var payload []byte

	scanErr := p.DB.QueryRowContext(ctx, getDraftByKey, draftKey).Scan(
		&draft.DraftID,
		&draft.DraftKey,
		&draft.DraftType,
		&draft.DeviceID,
		&draft.RegisterID,
		&draft.UserID,
		&payload,
		&draft.ItemCount,
		&draft.TotalCents,
		&draft.CustomerName,
		&draft.Completed,
		&draft.SavedAt,
		&draft.ExpiresAt,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return models.Draft{}, ErrDraftNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "draftRepository.GetDraftByKey").
			Str("draft_key", draftKey).
			Msg("failed to query requested draft")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	if err := json.Unmarshal(payload, &draft.Payload); err != nil {
		log.Err(err).
			Str("func", "draftRepository.GetDraftByKey").
			Str("draft_key", draftKey).
			Msg("failed to deserialize draft payload")
		return models.Draft{}, fmt.Errorf("failed to deserialize draft payload (draft_key=%s): %w", draftKey, err)
	}

	return draft, nil
}

// ListDrafts returns live (non-completed) drafts matching the filter,
// newest first. Expired drafts are excluded unless the filter asks for
// them. Returns an empty slice when nothing matches.
func (p *draftRepository) ListDrafts(ctx context.Context, filter models.ListDraftsFilter) ([]models.Draft, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDraftsQuery(ctx, filter)
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.ListDrafts").
			Msg("failed to create query")
		return nil, err
	}

	rows, queryErr := p.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "draftRepository.ListDrafts").
			Str("device_id", filter.DeviceID).
			Msg("failed to execute query for listing drafts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	drafts := make([]models.Draft, 0, defaultListLimit)

	for rows.Next() {
		var draft models.Draft
		var payload []byte

		scanErr := rows.Scan(
			&draft.DraftID,
			&draft.DraftKey,
			&draft.DraftType,
			&draft.DeviceID,
			&draft.RegisterID,
			&draft.UserID,
			&payload,
			&draft.ItemCount,
			&draft.TotalCents,
			&draft.CustomerName,
			&draft.Completed,
			&draft.SavedAt,
			&draft.ExpiresAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "draftRepository.ListDrafts").
				Msg("failed to scan draft row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if err = json.Unmarshal(payload, &draft.Payload); err != nil {
			log.Err(err).
				Str("func", "draftRepository.ListDrafts").
				Int64("draft_id", draft.DraftID).
				Msg("failed to deserialize draft payload")
			return nil, fmt.Errorf("failed to deserialize draft payload (draft_id=%d): %w", draft.DraftID, err)
		}

		drafts = append(drafts, draft)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "draftRepository.ListDrafts").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return drafts, nil
}

// DeleteDraft removes a draft row by id. Returns [ErrDraftNotFound] when
// the row does not exist, so the handler can answer 404 while batch replay
// treats the outcome as idempotent success.
func (p *draftRepository) DeleteDraft(ctx context.Context, draftID int64) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteDraftByID, draftID)
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.DeleteDraft").
			Int64("draft_id", draftID).
			Msg("failed to execute delete for draft")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.DeleteDraft").
			Int64("draft_id", draftID).
			Msg("failed to get rows affected after delete")
		return fmt.Errorf("failed to get rows affected (draft_id=%d): %w", draftID, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "draftRepository.DeleteDraft").
			Int64("draft_id", draftID).
			Msg("no rows affected during delete: record not found")
		return ErrDraftNotFound
	}

	return nil
}

// CompleteDraft marks a draft consumed. The transition is idempotent:
// completing an already-completed draft is reported as success. Returns
// [ErrDraftNotFound] when the draft does not exist.
func (p *draftRepository) CompleteDraft(ctx context.Context, draftID int64, notes string) error {
	log := logger.FromContext(ctx)

	var updatedID *int64
	var wasCompleted *bool

	queryRowErr := p.DB.QueryRowContext(ctx, completeDraftQuery, draftID, notes).Scan(&updatedID, &wasCompleted)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "draftRepository.CompleteDraft").
			Int64("draft_id", draftID).
			Msg("failed to execute complete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, queryRowErr)
	}

	// not found: target_record empty -> both NULL
	if wasCompleted == nil {
		log.Warn().
			Str("func", "draftRepository.CompleteDraft").
			Int64("draft_id", draftID).
			Msg("record not found")
		return ErrDraftNotFound
	}

	// found but not updated -> already completed, idempotent success
	if updatedID == nil {
		log.Debug().
			Str("func", "draftRepository.CompleteDraft").
			Int64("draft_id", draftID).
			Msg("draft already completed, nothing to do")
		return nil
	}

	log.Info().
		Str("func", "draftRepository.CompleteDraft").
		Int64("draft_id", *updatedID).
		Msg("successfully completed draft")

	return nil
}

// ApplySaveDraft performs the journaled variant of [UpsertDraft] for one
// batch-sync operation: the operation id is recorded in applied_operations
// and the draft upserted inside a single transaction, so a replayed
// operation can never produce a second upsert.
//
// Returns [ErrOperationAlreadyApplied] when op.ID is already journaled.
func (p *draftRepository) ApplySaveDraft(ctx context.Context, op models.PendingOperation, draft models.Draft) (models.Draft, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(draft.Payload)
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.ApplySaveDraft").
			Str("op_id", op.ID).
			Msg("failed to serialize draft payload")
		return models.Draft{}, fmt.Errorf("failed to serialize draft payload (op_id=%s): %w", op.ID, err)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.ApplySaveDraft").
			Str("op_id", op.ID).
			Msg("failed to begin transaction")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if journalErr := p.journalOperation(ctx, tx, op); journalErr != nil {
		return models.Draft{}, journalErr
	}

	queryRowErr := tx.QueryRowContext(ctx, upsertDraft,
		draft.DraftKey,
		draft.DraftType,
		draft.DeviceID,
		draft.RegisterID,
		draft.UserID,
		payload,
		draft.ItemCount,
		draft.TotalCents,
		draft.CustomerName,
		draft.ExpiresAt,
	).Scan(&draft.DraftID, &draft.SavedAt)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "draftRepository.ApplySaveDraft").
			Str("op_id", op.ID).
			Str("draft_key", draft.DraftKey).
			Msg("failed to execute upsert for draft in transaction")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExecutingQuery, queryRowErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "draftRepository.ApplySaveDraft").
			Str("op_id", op.ID).
			Msg("failed to commit transaction")
		return models.Draft{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	draft.Local = false
	draft.Completed = false

	return draft, nil
}

// ApplyDeleteDraft performs the journaled delete for one batch-sync
// operation. Deleting a draft_key that no longer has a row still succeeds:
// the clerk's intent (no draft under this key) already holds.
//
// Returns [ErrOperationAlreadyApplied] when op.ID is already journaled.
func (p *draftRepository) ApplyDeleteDraft(ctx context.Context, op models.PendingOperation, draftKey string) error {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.ApplyDeleteDraft").
			Str("op_id", op.ID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if journalErr := p.journalOperation(ctx, tx, op); journalErr != nil {
		return journalErr
	}

	if _, execErr := tx.ExecContext(ctx, deleteDraftByKey, draftKey); execErr != nil {
		log.Err(execErr).
			Str("func", "draftRepository.ApplyDeleteDraft").
			Str("op_id", op.ID).
			Str("draft_key", draftKey).
			Msg("failed to execute delete for draft in transaction")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "draftRepository.ApplyDeleteDraft").
			Str("op_id", op.ID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// journalOperation inserts the operation's idempotency key into
// applied_operations within tx. A unique violation means a replay.
func (p *draftRepository) journalOperation(ctx context.Context, tx *sql.Tx, op models.PendingOperation) error {
	log := logger.FromContext(ctx)

	_, err := tx.ExecContext(ctx, insertAppliedOperation, op.ID, op.DeviceID, string(op.Type))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Debug().
				Str("func", "draftRepository.journalOperation").
				Str("op_id", op.ID).
				Msg("operation already journaled, treating as replay")
			return ErrOperationAlreadyApplied
		}

		log.Err(err).
			Str("func", "draftRepository.journalOperation").
			Str("op_id", op.ID).
			Msg("failed to journal operation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeviceOperations returns the most recently applied operations for a
// device from the journal, newest first. Diagnostic surface for
// reconciliation: a register tech can check whether an operation landed.
func (p *draftRepository) DeviceOperations(ctx context.Context, deviceID string, limit int) ([]models.PendingOperation, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, queryErr := p.DB.QueryContext(ctx, getDeviceOperations, deviceID, limit)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "draftRepository.DeviceOperations").
			Str("device_id", deviceID).
			Msg("failed to execute query for device operations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	var ops []models.PendingOperation

	for rows.Next() {
		var op models.PendingOperation

		scanErr := rows.Scan(
			&op.ID,
			&op.Type,
			&op.DeviceID,
			&op.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "draftRepository.DeviceOperations").
				Str("device_id", deviceID).
				Msg("failed to scan operation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		ops = append(ops, op)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "draftRepository.DeviceOperations").
			Str("device_id", deviceID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return ops, nil
}

// PurgeExpired removes drafts whose expiry has passed and journal entries
// older than journalRetention. Returns the total number of rows removed.
func (p *draftRepository) PurgeExpired(ctx context.Context, journalRetention time.Duration) (int64, error) {
	log := logger.FromContext(ctx)

	draftsResult, err := p.DB.ExecContext(ctx, purgeExpiredDrafts)
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.PurgeExpired").
			Msg("failed to purge expired drafts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	purgedDrafts, _ := draftsResult.RowsAffected()

	opsResult, err := p.DB.ExecContext(ctx, purgeAppliedOperations, journalRetention.Seconds())
	if err != nil {
		log.Err(err).
			Str("func", "draftRepository.PurgeExpired").
			Msg("failed to purge applied operations journal")
		return purgedDrafts, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	purgedOps, _ := opsResult.RowsAffected()

	if purgedDrafts > 0 || purgedOps > 0 {
		log.Info().
			Str("func", "draftRepository.PurgeExpired").
			Int64("purged_drafts", purgedDrafts).
			Int64("purged_operations", purgedOps).
			Msg("purged expired rows")
	}

	return purgedDrafts + purgedOps, nil
}

// Retryable implements the batch-sync failure classification: PostgreSQL
// errors are classified by code (connection loss and deadlocks retry,
// constraint and syntax classes do not); errors that never carried a
// PostgreSQL code (dial failures, timeouts) are transient by nature.
func (p *draftRepository) Retryable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return p.errorClassificator.Classify(err) == Retryable
	}

	return true
}
