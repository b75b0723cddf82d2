package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/models"
)

// Kv layout of the cache: one entry per draft plus an ordered id index,
// because the kv surface has no native list primitive.
const (
	draftEntryPrefix = "draft-"
	draftIndexKey    = "draft-index"
)

// draftCache is the device-local draft collection over the durable kv.
// Server-acknowledged drafts are cached under their numeric server id;
// drafts not yet acknowledged live under a deterministic "local-<key>" id
// so repeated offline saves of the same cart overwrite one entry instead
// of accumulating.
type draftCache struct {
	kv     store.KVStore
	logger *logger.Logger

	mu sync.Mutex
}

func newDraftCache(kv store.KVStore, logger *logger.Logger) *draftCache {
	return &draftCache{kv: kv, logger: logger}
}

// cacheID derives the cache entry id of a draft.
func cacheID(d models.Draft) string {
	if d.DraftID != 0 {
		return strconv.FormatInt(d.DraftID, 10)
	}

	return "local-" + d.DraftKey
}

// Put stores d, refreshing the index. Storing a server-acknowledged draft
// removes the local-only entry with the same draft key: the canonical
// record supersedes it.
func (c *draftCache) Put(ctx context.Context, d models.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := cacheID(d)
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", id, err)
	}

	if err = c.kv.Set(ctx, draftEntryPrefix+id, raw); err != nil {
		return fmt.Errorf("failed to store draft %s: %w", id, err)
	}

	index, err := c.loadIndex(ctx)
	if err != nil {
		return err
	}

	if d.DraftID != 0 {
		index = c.dropEntry(ctx, index, "local-"+d.DraftKey)
	}

	found := false
	for _, existing := range index {
		if existing == id {
			found = true
			break
		}
	}
	if !found {
		index = append(index, id)
	}

	return c.persistIndex(ctx, index)
}

// Get returns the cached draft with the given entry id, or
// [store.ErrKeyNotFound] when absent.
func (c *draftCache) Get(ctx context.Context, id string) (*models.Draft, error) {
	raw, err := c.kv.Get(ctx, draftEntryPrefix+id)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read draft %s: %w", id, err)
	}

	var d models.Draft
	if err = json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", id, err)
	}

	return &d, nil
}

// Delete removes the entry and its index slot. Deleting an absent entry is
// a no-op.
func (c *draftCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(ctx, draftEntryPrefix+id); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}

	index, err := c.loadIndex(ctx)
	if err != nil {
		return err
	}

	next := index[:0]
	for _, existing := range index {
		if existing != id {
			next = append(next, existing)
		}
	}

	return c.persistIndex(ctx, next)
}

// DeleteByKey removes every cached copy of the draft key, local-only and
// canonical alike. Used when the server reports the draft completed.
func (c *draftCache) DeleteByKey(ctx context.Context, draftKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.loadIndex(ctx)
	if err != nil {
		return err
	}

	next := index[:0]
	for _, id := range index {
		d, getErr := c.Get(ctx, id)
		if getErr != nil {
			// Нечитаемую запись оставляем в индексе: её ключ неизвестен.
			next = append(next, id)
			continue
		}
		if d.DraftKey != draftKey {
			next = append(next, id)
			continue
		}
		if err = c.kv.Delete(ctx, draftEntryPrefix+id); err != nil {
			return fmt.Errorf("failed to delete draft %s: %w", id, err)
		}
	}

	return c.persistIndex(ctx, next)
}

// List returns every readable cached draft in index order. Entries that
// fail to load are skipped with a warning rather than failing the whole
// listing.
func (c *draftCache) List(ctx context.Context) ([]models.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	drafts := make([]models.Draft, 0, len(index))
	for _, id := range index {
		d, getErr := c.Get(ctx, id)
		if getErr != nil {
			c.logger.Warn().Err(getErr).Str("draft", id).Msg("skipping unreadable cached draft")
			continue
		}
		drafts = append(drafts, *d)
	}

	return drafts, nil
}

// FindByKey returns the freshest cached copy of the draft key, preferring
// the most recent SavedAt when both a local-only and a canonical entry
// exist. Returns (nil, nil) when the key is not cached.
func (c *draftCache) FindByKey(ctx context.Context, draftKey string) (*models.Draft, error) {
	drafts, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	var newest *models.Draft
	for i := range drafts {
		if drafts[i].DraftKey != draftKey {
			continue
		}
		if newest == nil || drafts[i].SavedAt.After(newest.SavedAt) {
			newest = &drafts[i]
		}
	}

	return newest, nil
}

// dropEntry removes id from both the kv and the index slice, logging
// instead of failing: losing a superseded local copy is not worth
// aborting a canonical store. Caller holds c.mu.
func (c *draftCache) dropEntry(ctx context.Context, index []string, id string) []string {
	if err := c.kv.Delete(ctx, draftEntryPrefix+id); err != nil {
		c.logger.Warn().Err(err).Str("draft", id).Msg("failed to drop superseded draft")
	}

	next := index[:0]
	for _, existing := range index {
		if existing != id {
			next = append(next, existing)
		}
	}

	return next
}

// loadIndex reads and decodes the id index. Caller holds c.mu.
func (c *draftCache) loadIndex(ctx context.Context) ([]string, error) {
	raw, err := c.kv.Get(ctx, draftIndexKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft index: %w", err)
	}

	var index []string
	if err = json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("failed to decode draft index: %w", err)
	}

	return index, nil
}

// persistIndex writes the id index whole. Caller holds c.mu.
func (c *draftCache) persistIndex(ctx context.Context, index []string) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to encode draft index: %w", err)
	}

	if err = c.kv.Set(ctx, draftIndexKey, raw); err != nil {
		return fmt.Errorf("failed to persist draft index: %w", err)
	}

	return nil
}
