package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cart-keeper/models"
)

// Notifier reports connectivity to the draft service. The sync manager
// receives it as a dependency so that tests and embedders can substitute
// their own signal source.
type Notifier interface {
	// Subscribe registers fn to be called on every connectivity
	// transition. The returned function removes the subscription; it is
	// safe to call more than once.
	Subscribe(fn func(online bool)) (unsubscribe func())

	// Online returns the last known connectivity verdict.
	Online() bool
}

// ConnectivityNotifier is a Notifier with an owned background probe that
// must be started and stopped explicitly.
type ConnectivityNotifier interface {
	Notifier

	// Start launches the background probe. Calling Start on a running
	// notifier restarts it.
	Start(ctx context.Context)

	// Stop terminates the probe and blocks until it has exited. Safe to
	// call when not running.
	Stop()
}

// DraftSource is the read surface the sync manager needs from the working
// draft: a serializable snapshot for the debounce and auto-save paths.
type DraftSource interface {
	// Snapshot returns a deep copy of the current working-cart state.
	Snapshot() models.DraftPayload

	// IsEmpty reports whether the cart carries nothing worth persisting.
	IsEmpty() bool
}

// SyncManager owns the offline-first persistence of the working draft:
// the durable pending-operation queue, the connectivity-driven drain
// protocol, and the debounce/auto-save scheduler. All failures inside the
// manager are converted to events on Events(); Save/Load return errors
// only for programmer-error-class inputs and for local durability loss.
type SyncManager interface {
	// Start launches the scheduler goroutine and subscribes to the
	// connectivity notifier. A manager that is already running is
	// restarted. If the device is online, a drain of operations left over
	// from a previous session is requested immediately.
	Start(ctx context.Context) error

	// Stop cancels the scheduler, detaches the connectivity subscription
	// and blocks until the background goroutine has exited. In-flight
	// network calls finish or fail naturally; no new work is scheduled.
	// Safe to call when not running.
	Stop()

	// AttachSource binds the working draft the scheduler snapshots on
	// debounce and auto-save. Without a source those paths are no-ops.
	AttachSource(src DraftSource)

	// SaveDraft durably persists payload on the device and returns the
	// resulting draft record. The local write always happens first and
	// never depends on network success. When immediate is set and the
	// device is online, a synchronous remote save is attempted; on its
	// success the returned draft is the server-canonical record. In every
	// other case the save is queued as a pending operation and the
	// returned draft is the local record with Local set.
	//
	// An error is returned only when the payload cannot be serialized or
	// the device-local write itself fails.
	SaveDraft(ctx context.Context, payload models.DraftPayload, immediate bool) (models.Draft, error)

	// LoadDraft recovers the most recent durable draft for this manager's
	// draft key: the remote copy when the device is online and the server
	// answers, the locally cached copy otherwise. Returns (nil, nil) when
	// neither source has a draft to recover.
	LoadDraft(ctx context.Context) (*models.Draft, error)

	// ForceSync runs one drain attempt synchronously and returns its
	// error, bypassing the scheduler. The single-flight guard still
	// applies: a drain already in progress makes ForceSync a no-op.
	ForceSync(ctx context.Context) error

	// MarkDirty signals that the working draft mutated, resetting the
	// debounce timer. Never blocks.
	MarkDirty()

	// GetPendingCount returns the durable queue length.
	GetPendingCount(ctx context.Context) int

	// DeviceID returns the durable device identity the manager was
	// constructed with.
	DeviceID() string

	// Events returns the manager's event channel. The channel is buffered
	// and never blocks the engine: when a consumer falls behind, the
	// oldest event is dropped.
	Events() <-chan models.SyncEvent

	// State returns a point-in-time snapshot of the manager's status.
	State() models.SyncState
}

// SyncConfig carries the per-register parameters of a [SyncManager].
type SyncConfig struct {
	// DeviceID is the durable device identity scoping every draft and
	// operation. Required.
	DeviceID string

	// RegisterID is the optional human-assigned register number.
	RegisterID string

	// UserID is the clerk the working draft belongs to. Required.
	UserID int64

	// DraftType is the purpose of the working draft. Required.
	DraftType models.DraftType

	// MaxRetries is the retry budget per pending operation. An operation
	// whose RetryCount exceeds it is dropped and reported as a permanent
	// failure.
	MaxRetries int

	// RetryDelay is the fixed delay before a failed drain is retried.
	RetryDelay time.Duration

	// AutoSaveInterval is the period of the unconditional auto-save
	// ticker. Auto-save skips empty carts.
	AutoSaveInterval time.Duration

	// DebounceDelay is how long after the last MarkDirty the debounced
	// save fires.
	DebounceDelay time.Duration
}

// defaults applied when the corresponding SyncConfig field is zero.
const (
	defaultMaxRetries       = 3
	defaultRetryDelay       = 15 * time.Second
	defaultAutoSaveInterval = 30 * time.Second
	defaultDebounceDelay    = 2 * time.Second
)

func (c SyncConfig) withDefaults() SyncConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.AutoSaveInterval <= 0 {
		c.AutoSaveInterval = defaultAutoSaveInterval
	}
	if c.DebounceDelay <= 0 {
		c.DebounceDelay = defaultDebounceDelay
	}
	return c
}

// DraftStore is the live, mutable working draft of the register. Every
// mutation marks the draft dirty through the injected hook so the sync
// manager's debounce path fires; the store itself never touches durable
// storage or the network.
type DraftStore interface {
	DraftSource

	// AddItem appends a line item, merging quantity into an existing
	// line with the same SKU.
	AddItem(item models.LineItem)

	// UpdateItemQuantity sets the quantity of the line identified by sku.
	// A quantity of zero or less removes the line. Returns false when no
	// such line exists.
	UpdateItemQuantity(sku string, quantity int) bool

	// RemoveItem removes the line identified by sku. Returns false when
	// no such line exists.
	RemoveItem(sku string) bool

	// SetCustomer attaches the customer to the cart.
	SetCustomer(customer models.Customer)

	// ClearCustomer detaches the customer.
	ClearCustomer()

	// AddDiscount applies a cart-level discount.
	AddDiscount(discount models.Discount)

	// RemoveDiscount removes the discount identified by code. Returns
	// false when no such discount exists.
	RemoveDiscount(code string) bool

	// SetTaxSettings replaces the cart's tax treatment.
	SetTaxSettings(tax models.TaxSettings)

	// SetSalesperson attributes the sale to a clerk.
	SetSalesperson(salespersonID int64)

	// SetNotes replaces the free-form cart notes.
	SetNotes(notes string)

	// HoldTransaction parks the current cart under a label so the
	// register can serve the next customer, clearing the working state.
	// Returns the hold id. Holding an empty cart returns an error.
	HoldTransaction(label string) (string, error)

	// ReleaseHold restores the held transaction identified by holdID as
	// the working state. The current cart must be empty; park or complete
	// it first.
	ReleaseHold(holdID string) error

	// Restore replaces the entire working state with snapshot atomically.
	// Used when recovering a draft on register start.
	Restore(snapshot models.DraftPayload)

	// Reset clears the working state entirely.
	Reset()

	// Totals returns the live display totals of the working cart.
	Totals() (itemCount int, totalCents int64)
}

// Totaler computes the denormalized listing summary of a payload. The
// real pricing engine lives outside this module; the default Totaler is
// the payload's own naive summation.
type Totaler interface {
	Totals(payload models.DraftPayload) (itemCount int, totalCents int64)
}
