package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/internal/utils"
)

// DeviceIDKey is the kv entry holding the register's durable identity.
const DeviceIDKey = "device-id"

// EnsureDeviceID returns the device identity stored in kv, generating and
// persisting a fresh UUID on first run. The identity scopes every draft
// and pending operation the device produces, so it must never change once
// written.
func EnsureDeviceID(ctx context.Context, kv KVStore) (string, error) {
	raw, err := kv.Get(ctx, DeviceIDKey)
	if err == nil && len(raw) > 0 {
		return string(raw), nil
	}
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}

	id := utils.NewUUIDGenerator().Generate()
	if err = kv.Set(ctx, DeviceIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}

	return id, nil
}
