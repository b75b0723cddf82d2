package models

import (
	"fmt"
	"strings"
	"time"
)

// DraftType identifies the purpose a draft serves on the register.
// Exactly one live draft may exist per (device, user, type) combination.
type DraftType string

const (
	// DraftTypeSale is the working cart of an in-progress sale.
	DraftTypeSale DraftType = "sale_draft"

	// DraftTypeQuote is a saved quote a customer may return for later.
	DraftTypeQuote DraftType = "quote_draft"
)

// Draft is a named, versioned snapshot of working-cart state.
// It is the primary persistence model on both the device and the server.
// The engine treats Payload as an atomic blob: drafts are always written
// and read whole, never partially merged.
type Draft struct {
	// DraftID is the server-assigned identifier of the record.
	// Zero for drafts that exist only on the device (see Local).
	DraftID int64 `json:"draft_id,omitempty"`

	// DraftKey is the stable identity of the draft:
	// "<device_id>:<user_id>:<draft_type>". The server upserts by this key,
	// so retries of the same save never create duplicate rows.
	DraftKey string `json:"draft_key"`

	// DraftType defines the semantic purpose of the draft.
	DraftType DraftType `json:"draft_type"`

	// DeviceID is the durable identity of the register device that owns
	// the draft. Generated once per device and persisted indefinitely.
	DeviceID string `json:"device_id"`

	// RegisterID is the human-assigned register number ("REG-01").
	// Used for listing drafts by register; optional.
	RegisterID string `json:"register_id,omitempty"`

	// UserID is the clerk the draft belongs to.
	UserID int64 `json:"user_id"`

	// Payload is the full working-cart state. Opaque to the sync engine.
	Payload DraftPayload `json:"payload"`

	// ItemCount is a denormalized line-item count used for fast listing
	// without deserializing Payload.
	ItemCount int `json:"item_count"`

	// TotalCents is the denormalized cart total in cents.
	TotalCents int64 `json:"total_cents"`

	// CustomerName is the denormalized customer display name, empty when
	// no customer is attached.
	CustomerName string `json:"customer_name,omitempty"`

	// Local reports that the draft has been durably saved on-device but
	// not yet acknowledged by the server (no DraftID yet).
	Local bool `json:"local,omitempty"`

	// Completed reports that the draft was consumed (e.g. converted into
	// a transaction). Completed drafts are terminal.
	Completed bool `json:"completed,omitempty"`

	// SavedAt is the timestamp of the last durable write.
	SavedAt time.Time `json:"saved_at"`

	// ExpiresAt is the optional server-side expiry of the draft.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Draft model.
func (d *Draft) TableName() string {
	return "drafts"
}

// BuildDraftKey composes the stable draft identity from its three scope
// components. The reverse operation is ParseDraftKey.
func BuildDraftKey(deviceID string, userID int64, draftType DraftType) string {
	return fmt.Sprintf("%s:%d:%s", deviceID, userID, draftType)
}

// ParseDraftKey splits a draft key back into its scope components.
// Returns an error when the key does not have the expected
// "<device_id>:<user_id>:<draft_type>" shape.
func ParseDraftKey(key string) (deviceID string, userID int64, draftType DraftType, err error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", 0, "", fmt.Errorf("malformed draft key %q", key)
	}

	if _, err = fmt.Sscanf(parts[1], "%d", &userID); err != nil {
		return "", 0, "", fmt.Errorf("malformed user id in draft key %q: %w", key, err)
	}

	return parts[0], userID, DraftType(parts[2]), nil
}
