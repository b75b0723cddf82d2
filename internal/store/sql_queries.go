package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-cart-keeper/models"
)

const (
	upsertDraft = `
		INSERT INTO drafts (
			draft_key,
			draft_type,
			device_id,
			register_id,
			user_id,
			payload,
			item_count,
			total_cents,
			customer_name,
			saved_at,
			expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10)
		ON CONFLICT (draft_key) DO UPDATE SET
			draft_type    = EXCLUDED.draft_type,
			device_id     = EXCLUDED.device_id,
			register_id   = EXCLUDED.register_id,
			user_id       = EXCLUDED.user_id,
			payload       = EXCLUDED.payload,
			item_count    = EXCLUDED.item_count,
			total_cents   = EXCLUDED.total_cents,
			customer_name = EXCLUDED.customer_name,
			completed     = FALSE,
			saved_at      = NOW(),
			expires_at    = EXCLUDED.expires_at
		RETURNING draft_id, saved_at;`

	getDraftByID = `
		SELECT
			draft_id,
			draft_key,
			draft_type,
			device_id,
			register_id,
			user_id,
			payload,
			item_count,
			total_cents,
			customer_name,
			completed,
			saved_at,
			expires_at
		FROM drafts
		WHERE draft_id = $1;`

	getDraftByKey = `
		SELECT
			draft_id,
			draft_key,
			draft_type,
			device_id,
			register_id,
			user_id,
			payload,
			item_count,
			total_cents,
			customer_name,
			completed,
			saved_at,
			expires_at
		FROM drafts
		WHERE draft_key = $1;`

	deleteDraftByID = `
		DELETE FROM drafts
		WHERE draft_id = $1;`

	deleteDraftByKey = `
		DELETE FROM drafts
		WHERE draft_key = $1;`

	// completeDraftQuery distinguishes "not found" from "already completed"
	// in one roundtrip: target_record reports whether the row exists and its
	// current completed flag, updated_record reports whether this call
	// transitioned it.
	completeDraftQuery = `
		WITH target_record AS (
			SELECT draft_id, completed
			FROM drafts
			WHERE draft_id = $1
		), updated_record AS (
			UPDATE drafts
			SET completed        = TRUE,
				completed_at     = NOW(),
				completion_notes = $2
			WHERE draft_id = $1 AND completed = FALSE
			RETURNING draft_id
		)
		SELECT
			(SELECT draft_id FROM updated_record),
			(SELECT completed FROM target_record);`

	insertAppliedOperation = `
		INSERT INTO applied_operations (op_id, device_id, op_type)
		VALUES ($1, $2, $3);`

	getDeviceOperations = `
		SELECT op_id, op_type, device_id, applied_at
		FROM applied_operations
		WHERE device_id = $1
		ORDER BY applied_at DESC
		LIMIT $2;`

	purgeExpiredDrafts = `
		DELETE FROM drafts
		WHERE expires_at IS NOT NULL AND expires_at < NOW();`

	purgeAppliedOperations = `
		DELETE FROM applied_operations
		WHERE applied_at < NOW() - make_interval(secs => $1);`
)

// draftColumns is the column set scanned into [models.Draft], in scan order.
var draftColumns = []string{
	"draft_id",
	"draft_key",
	"draft_type",
	"device_id",
	"register_id",
	"user_id",
	"payload",
	"item_count",
	"total_cents",
	"customer_name",
	"completed",
	"saved_at",
	"expires_at",
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// buildListDraftsQuery dynamically builds the listing SELECT from the
// optional filter fields. Zero-valued fields add no condition; Limit is
// clamped into (0, maxListLimit]. Placeholders are PostgreSQL-style ($N).
func buildListDraftsQuery(_ context.Context, filter models.ListDraftsFilter) (string, []any, error) {
	builder := sq.Select(draftColumns...).
		From("drafts").
		Where(sq.Eq{"completed": false}).
		PlaceholderFormat(sq.Dollar)

	// Добавляем фильтры только для непустых полей
	if filter.DraftType != "" {
		builder = builder.Where(sq.Eq{"draft_type": string(filter.DraftType)})
	}

	if filter.DeviceID != "" {
		builder = builder.Where(sq.Eq{"device_id": filter.DeviceID})
	}

	if filter.RegisterID != "" {
		builder = builder.Where(sq.Eq{"register_id": filter.RegisterID})
	}

	if !filter.IncludeExpired {
		builder = builder.Where(sq.Or{
			sq.Eq{"expires_at": nil},
			sq.Expr("expires_at > NOW()"),
		})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	builder = builder.
		OrderBy("saved_at DESC").
		Limit(uint64(limit))

	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
