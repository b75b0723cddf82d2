package store

import "context"

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KVStore is the durable key/value surface the sync engine builds on.
// All engine state that must survive a process restart (drafts, the
// pending-operation queue, device identity) goes through this interface.
//
// Get returns [ErrKeyNotFound] when the key has no value; implementations
// must not invent empty values for absent keys. Set stores the full value
// or fails; there is no append or merge. Delete of an absent key is a no-op.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
