package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
)

// probeKey is read once at construction to verify the primary backend
// answers at all. The key is never written, so a healthy primary responds
// with ErrKeyNotFound.
const probeKey = "storage-probe"

// dualKV layers the SQLite primary over the JSON-file fallback.
//
// Availability of the primary is probed exactly once, at construction;
// the verdict is never revisited per call. While the primary is healthy,
// every successful write is mirrored best-effort into the fallback so
// that a later primary failure still finds recent data there. Mirror
// failures are logged and swallowed: they must not fail a write the
// primary has already accepted.
type dualKV struct {
	primary  KVStore
	fallback KVStore
	logger   *logger.Logger

	// primaryOK is the construction-time probe verdict. False means all
	// operations go to the fallback only.
	primaryOK bool
}

// NewDualKV builds the two-tier storage adapter. primary may be nil when
// its construction already failed; the adapter then runs on the fallback
// alone, which is assumed to always be available.
func NewDualKV(ctx context.Context, primary, fallback KVStore, log *logger.Logger) KVStore {
	d := &dualKV{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
	d.primaryOK = d.probePrimary(ctx)

	if !d.primaryOK {
		log.Warn().
			Str("func", "NewDualKV").
			Msg("primary kv backend unavailable, using fallback only")
	}

	return d
}

func (d *dualKV) probePrimary(ctx context.Context) bool {
	if d.primary == nil {
		return false
	}

	if _, err := d.primary.Get(ctx, probeKey); err != nil && !errors.Is(err, ErrKeyNotFound) {
		d.logger.Warn().
			Err(err).
			Str("func", "dualKV.probePrimary").
			Msg("primary kv backend failed availability probe")
		return false
	}

	return true
}

// Get reads from the primary first. A miss or a read error falls through
// to the fallback, whose verdict is final.
func (d *dualKV) Get(ctx context.Context, key string) ([]byte, error) {
	if d.primaryOK {
		value, err := d.primary.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrKeyNotFound) {
			logger.FromContext(ctx).Debug().
				Err(err).
				Str("func", "dualKV.Get").
				Str("key", key).
				Msg("primary read failed, trying fallback")
		}
	}

	return d.fallback.Get(ctx, key)
}

// Set writes to the primary and mirrors the value into the fallback.
// When the primary write fails the value is still stored in the fallback;
// an error is returned only when both backends reject it.
func (d *dualKV) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	if !d.primaryOK {
		return d.fallback.Set(ctx, key, value)
	}

	primaryErr := d.primary.Set(ctx, key, value)
	if primaryErr == nil {
		// mirror best-effort
		if mirrorErr := d.fallback.Set(ctx, key, value); mirrorErr != nil {
			log.Debug().
				Err(mirrorErr).
				Str("func", "dualKV.Set").
				Str("key", key).
				Msg("fallback mirror write failed")
		}
		return nil
	}

	log.Warn().
		Err(primaryErr).
		Str("func", "dualKV.Set").
		Str("key", key).
		Msg("primary write failed, storing in fallback")

	if fallbackErr := d.fallback.Set(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("both kv backends failed (key=%s): %w", key, errors.Join(primaryErr, fallbackErr))
	}

	return nil
}

// Delete removes the key from both backends.
func (d *dualKV) Delete(ctx context.Context, key string) error {
	if !d.primaryOK {
		return d.fallback.Delete(ctx, key)
	}

	primaryErr := d.primary.Delete(ctx, key)
	if fallbackErr := d.fallback.Delete(ctx, key); fallbackErr != nil {
		logger.FromContext(ctx).Debug().
			Err(fallbackErr).
			Str("func", "dualKV.Delete").
			Str("key", key).
			Msg("fallback delete failed")
	}

	return primaryErr
}

func (d *dualKV) Close() error {
	var firstErr error
	if d.primary != nil {
		firstErr = d.primary.Close()
	}
	if err := d.fallback.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
