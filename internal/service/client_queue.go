package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/models"
)

// pendingOperationsKey is the kv entry holding the durable operation queue,
// a JSON array of [models.PendingOperation] in enqueue order.
const pendingOperationsKey = "pending-operations"

// operationQueue is the durable FIFO of not-yet-confirmed mutations.
// Every method re-reads the kv entry under the mutex, so the durable copy
// is the single source of truth: a queue rebuilt over the same kv after a
// process restart sees exactly the operations the previous process left.
type operationQueue struct {
	kv     store.KVStore
	logger *logger.Logger

	mu sync.Mutex
}

func newOperationQueue(kv store.KVStore, logger *logger.Logger) *operationQueue {
	return &operationQueue{kv: kv, logger: logger}
}

// Load returns the queue contents in enqueue order. An absent kv entry is
// an empty queue, not an error.
func (q *operationQueue) Load(ctx context.Context) ([]models.PendingOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.load(ctx)
}

// Append durably adds op to the tail of the queue.
func (q *operationQueue) Append(ctx context.Context, op models.PendingOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.load(ctx)
	if err != nil {
		return err
	}

	return q.persist(ctx, append(ops, op))
}

// Reconcile rewrites the queue after a drain attempt: operations from the
// drained snapshot are replaced by survivors (retries with bumped counts),
// while operations enqueued after the snapshot was taken are preserved at
// the tail. Called with the snapshot the drain loaded, never with a guess.
func (q *operationQueue) Reconcile(ctx context.Context, snapshot, survivors []models.PendingOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	current, err := q.load(ctx)
	if err != nil {
		return err
	}

	drained := make(map[string]struct{}, len(snapshot))
	for _, op := range snapshot {
		drained[op.ID] = struct{}{}
	}

	next := make([]models.PendingOperation, 0, len(survivors)+len(current))
	next = append(next, survivors...)
	for _, op := range current {
		if _, ok := drained[op.ID]; !ok {
			next = append(next, op)
		}
	}

	return q.persist(ctx, next)
}

// Count returns the durable queue length, zero when the queue is unreadable.
func (q *operationQueue) Count(ctx context.Context) int {
	ops, err := q.Load(ctx)
	if err != nil {
		q.logger.Warn().Err(err).Msg("failed to count pending operations")
		return 0
	}

	return len(ops)
}

// load reads and decodes the durable queue. Caller holds q.mu.
func (q *operationQueue) load(ctx context.Context) ([]models.PendingOperation, error) {
	raw, err := q.kv.Get(ctx, pendingOperationsKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return []models.PendingOperation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending operations: %w", err)
	}

	var ops []models.PendingOperation
	if err = json.Unmarshal(raw, &ops); err != nil {
		// Повреждённую очередь не перезаписываем: данные оператору ещё
		// могут понадобиться для ручного восстановления.
		return nil, fmt.Errorf("failed to decode pending operations: %w", err)
	}

	return ops, nil
}

// persist writes ops as the whole queue. Caller holds q.mu.
func (q *operationQueue) persist(ctx context.Context, ops []models.PendingOperation) error {
	raw, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to encode pending operations: %w", err)
	}

	if err = q.kv.Set(ctx, pendingOperationsKey, raw); err != nil {
		return fmt.Errorf("failed to persist pending operations: %w", err)
	}

	return nil
}
