package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/adapter"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
)

// eventBufferSize bounds the event channel. When a consumer falls behind,
// the oldest event is dropped so the engine itself never blocks on a slow
// status indicator.
const eventBufferSize = 32

// syncManager is the offline-first persistence engine of one register
// draft. Durable local state always comes first: the kv-backed draft cache
// and operation queue are written before any network attempt, and the
// durable copies stay authoritative across process restarts.
type syncManager struct {
	cfg      SyncConfig
	api      adapter.DraftAPI
	notifier Notifier
	logger   *logger.Logger

	queue *operationQueue
	cache *draftCache
	uuid  *utils.UUIDGenerator

	// draftKey is the stable identity of the working draft, fixed at
	// construction.
	draftKey string

	// Scheduler wakeups. All sends are non-blocking; a full buffer means a
	// wakeup is already pending and the signal can be safely dropped.
	dirtyCh chan struct{}
	drainCh chan struct{}
	retryCh chan struct{}

	events chan models.SyncEvent

	mu             sync.Mutex
	lastOnline     bool
	syncInProgress bool
	lastSyncAt     *time.Time
	lastError      string
	source         DraftSource

	runMu       sync.Mutex
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup
}

// NewSyncManager creates a sync manager over the device kv, the draft
// service client and a connectivity notifier. The manager is idle until
// Start is called; SaveDraft and LoadDraft work even before that, minus
// the background scheduling.
func NewSyncManager(kv store.KVStore, api adapter.DraftAPI, notifier Notifier, cfg SyncConfig, logger *logger.Logger) (SyncManager, error) {
	if cfg.DeviceID == "" {
		return nil, fmt.Errorf("%w: device id is required", ErrInvalidDataProvided)
	}
	if cfg.UserID == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidDataProvided)
	}
	if cfg.DraftType == "" {
		return nil, fmt.Errorf("%w: draft type is required", ErrInvalidDataProvided)
	}
	cfg = cfg.withDefaults()

	return &syncManager{
		cfg:      cfg,
		api:      api,
		notifier: notifier,
		logger:   logger,
		queue:    newOperationQueue(kv, logger),
		cache:    newDraftCache(kv, logger),
		uuid:     utils.NewUUIDGenerator(),
		draftKey: models.BuildDraftKey(cfg.DeviceID, cfg.UserID, cfg.DraftType),
		dirtyCh:  make(chan struct{}, 1),
		drainCh:  make(chan struct{}, 1),
		retryCh:  make(chan struct{}, 1),
		events:   make(chan models.SyncEvent, eventBufferSize),
	}, nil
}

// Start implements SyncManager.
func (m *syncManager) Start(ctx context.Context) error {
	m.Stop()

	m.runMu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.runMu.Unlock()

	// Принимаем текущий вердикт без события: события публикуются только
	// на переходах.
	m.setOnline(m.notifier.Online())

	unsubscribe := m.notifier.Subscribe(m.handleConnectivity)
	m.runMu.Lock()
	m.unsubscribe = unsubscribe
	m.runMu.Unlock()

	go m.run(runCtx)

	// Operations left over from a previous session drain right away.
	if m.isOnline() {
		m.requestDrain()
	}

	m.logger.Info().
		Str("draft_key", m.draftKey).
		Bool("online", m.isOnline()).
		Msg("sync manager started")

	return nil
}

// Stop implements SyncManager.
func (m *syncManager) Stop() {
	m.runMu.Lock()
	cancel := m.cancel
	m.cancel = nil
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.runMu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// AttachSource implements SyncManager.
func (m *syncManager) AttachSource(src DraftSource) {
	m.mu.Lock()
	m.source = src
	m.mu.Unlock()
}

// SaveDraft implements SyncManager. The durable local write happens before
// any network attempt; an immediate online save that fails falls back to
// queuing without surfacing the network error to the caller.
func (m *syncManager) SaveDraft(ctx context.Context, payload models.DraftPayload, immediate bool) (models.Draft, error) {
	local := m.composeLocalDraft(payload)
	if err := m.cache.Put(ctx, local); err != nil {
		return models.Draft{}, fmt.Errorf("failed to persist draft locally: %w", err)
	}

	if immediate && m.isOnline() {
		canonical, err := m.api.SaveDraft(ctx, m.composeSaveRequest(payload))
		if err == nil {
			// Канонический экземпляр вытесняет локальную копию.
			if putErr := m.cache.Put(ctx, canonical); putErr != nil {
				m.logger.Warn().Err(putErr).Msg("failed to cache canonical draft")
			}
			m.emit(models.EventDraftSaved{Draft: canonical})
			return canonical, nil
		}

		m.logger.Warn().Err(err).Msg("immediate save failed, queuing operation")
	}

	if err := m.enqueueSave(ctx, payload); err != nil {
		return models.Draft{}, err
	}

	if m.isOnline() {
		m.requestDrain()
	}

	m.emit(models.EventDraftSaved{Draft: local})

	return local, nil
}

// LoadDraft implements SyncManager. The remote copy wins while online; the
// local cache answers otherwise. A remote draft marked completed was
// consumed elsewhere, so its local copies are dropped and there is nothing
// to recover.
func (m *syncManager) LoadDraft(ctx context.Context) (*models.Draft, error) {
	if m.isOnline() {
		remote, err := m.api.GetDraftByKey(ctx, m.draftKey)
		switch {
		case err != nil:
			m.logger.Warn().Err(err).Msg("remote load failed, falling back to local cache")
		case remote == nil:
			// Сервер черновика не знает; локальная копия, если есть,
			// ещё не синхронизирована и важнее пустого ответа.
		case remote.Completed:
			if delErr := m.cache.DeleteByKey(ctx, m.draftKey); delErr != nil {
				m.logger.Warn().Err(delErr).Msg("failed to drop completed draft copies")
			}
			return nil, nil
		default:
			if putErr := m.cache.Put(ctx, *remote); putErr != nil {
				m.logger.Warn().Err(putErr).Msg("failed to refresh local draft cache")
			}
			return remote, nil
		}
	}

	return m.cache.FindByKey(ctx, m.draftKey)
}

// ForceSync implements SyncManager.
func (m *syncManager) ForceSync(ctx context.Context) error {
	return m.processPendingOperations(ctx)
}

// MarkDirty implements SyncManager.
func (m *syncManager) MarkDirty() {
	select {
	case m.dirtyCh <- struct{}{}:
	default:
	}
}

// GetPendingCount implements SyncManager.
func (m *syncManager) GetPendingCount(ctx context.Context) int {
	return m.queue.Count(ctx)
}

// DeviceID implements SyncManager.
func (m *syncManager) DeviceID() string {
	return m.cfg.DeviceID
}

// Events implements SyncManager.
func (m *syncManager) Events() <-chan models.SyncEvent {
	return m.events
}

// State implements SyncManager.
func (m *syncManager) State() models.SyncState {
	pending := m.queue.Count(context.Background())
	online := m.isOnline()

	m.mu.Lock()
	defer m.mu.Unlock()

	state := models.SyncState{
		Online:         online,
		SyncInProgress: m.syncInProgress,
		PendingCount:   pending,
		LastError:      m.lastError,
	}
	if m.lastSyncAt != nil {
		at := *m.lastSyncAt
		state.LastSyncAt = &at
	}

	return state
}

// ── drain protocol ──────────────────────────────────────────────────────

// processPendingOperations runs one drain attempt: load the durable queue,
// submit it whole, apply per-operation verdicts, rewrite the queue. The
// returned error covers drain-level problems (queue unreadable, transport
// failure); individual operation failures are reported as events only.
func (m *syncManager) processPendingOperations(ctx context.Context) error {
	if !m.beginDrain() {
		return nil
	}
	defer m.endDrain()

	ops, err := m.queue.Load(ctx)
	if err != nil {
		m.noteSyncError(err.Error())
		m.emit(models.EventSyncFailed{Err: err, Remaining: 0})
		return err
	}

	if len(ops) == 0 {
		m.markSynced()
		m.emit(models.EventSyncCompleted{Synced: 0})
		return nil
	}

	m.emit(models.EventSyncStarted{Pending: len(ops)})

	resp, err := m.api.BatchSync(ctx, models.BatchSyncRequest{Operations: ops, DeviceID: m.cfg.DeviceID})
	if err != nil {
		return m.handleTransportFailure(ctx, ops, err)
	}

	verdicts := make(map[string]models.OperationResult, len(resp.Results))
	for _, r := range resp.Results {
		verdicts[r.ID] = r
	}

	var (
		survivors []models.PendingOperation
		synced    int
		failures  int
	)
	for _, op := range ops {
		res, answered := verdicts[op.ID]
		switch {
		case !answered:
			// Сервер не вынес вердикта: операция остаётся в очереди,
			// бюджет повторов не расходуется.
			m.logger.Warn().Str("op_id", op.ID).Msg("operation missing from batch results")
			survivors = append(survivors, op)
			failures++
		case res.Success:
			synced++
		case !res.Retryable:
			failures++
			m.logger.Error().Str("op_id", op.ID).Str("message", res.Message).Msg("operation rejected permanently")
			m.emit(models.EventOperationFailed{OpID: op.ID, Permanent: true, Message: res.Message})
		default:
			failures++
			op.RetryCount++
			if op.RetryCount > m.cfg.MaxRetries {
				m.logger.Error().Str("op_id", op.ID).Int("retries", op.RetryCount).Msg("operation dropped, retry budget exhausted")
				m.emit(models.EventOperationFailed{OpID: op.ID, Permanent: true, Message: res.Message})
				continue
			}
			m.emit(models.EventOperationFailed{OpID: op.ID, Permanent: false, Message: res.Message})
			survivors = append(survivors, op)
		}
	}

	if err = m.queue.Reconcile(ctx, ops, survivors); err != nil {
		m.noteSyncError(err.Error())
		m.emit(models.EventSyncFailed{Err: err, Remaining: len(survivors)})
		return err
	}

	if failures > 0 {
		m.noteSyncError(fmt.Sprintf("%d of %d operations failed", failures, len(ops)))
		m.emit(models.EventSyncFailed{Remaining: len(survivors)})
		if len(survivors) > 0 && m.isOnline() {
			m.requestRetry()
		}
		return nil
	}

	m.markSynced()
	m.emit(models.EventSyncCompleted{Synced: synced})

	return nil
}

// handleTransportFailure applies batch-level failure semantics: the server
// was never heard, so every submitted operation consumes one retry and
// over-budget operations are dropped as permanent losses. A failure caused
// by the manager's own teardown leaves the queue untouched.
func (m *syncManager) handleTransportFailure(ctx context.Context, ops []models.PendingOperation, cause error) error {
	if errors.Is(cause, context.Canceled) {
		return cause
	}

	var survivors []models.PendingOperation
	for _, op := range ops {
		op.RetryCount++
		if op.RetryCount > m.cfg.MaxRetries {
			m.logger.Error().Str("op_id", op.ID).Int("retries", op.RetryCount).Msg("operation dropped, retry budget exhausted")
			m.emit(models.EventOperationFailed{OpID: op.ID, Permanent: true, Message: cause.Error()})
			continue
		}
		survivors = append(survivors, op)
	}

	if err := m.queue.Reconcile(ctx, ops, survivors); err != nil {
		m.noteSyncError(err.Error())
		m.emit(models.EventSyncFailed{Err: err, Remaining: len(survivors)})
		return err
	}

	m.noteSyncError(cause.Error())
	m.emit(models.EventSyncFailed{Err: cause, Remaining: len(survivors)})

	if len(survivors) > 0 && m.isOnline() {
		m.requestRetry()
	}

	return cause
}

// ── draft composition ───────────────────────────────────────────────────

func (m *syncManager) composeLocalDraft(payload models.DraftPayload) models.Draft {
	itemCount, totalCents, customerName := payload.Summary()

	return models.Draft{
		DraftKey:     m.draftKey,
		DraftType:    m.cfg.DraftType,
		DeviceID:     m.cfg.DeviceID,
		RegisterID:   m.cfg.RegisterID,
		UserID:       m.cfg.UserID,
		Payload:      payload,
		ItemCount:    itemCount,
		TotalCents:   totalCents,
		CustomerName: customerName,
		Local:        true,
		SavedAt:      time.Now(),
	}
}

func (m *syncManager) composeSaveRequest(payload models.DraftPayload) models.SaveDraftRequest {
	return models.SaveDraftRequest{
		DraftKey:   m.draftKey,
		DraftType:  m.cfg.DraftType,
		DeviceID:   m.cfg.DeviceID,
		RegisterID: m.cfg.RegisterID,
		UserID:     m.cfg.UserID,
		Payload:    payload,
	}
}

// enqueueSave durably queues an OpSaveDraft carrying the payload.
func (m *syncManager) enqueueSave(ctx context.Context, payload models.DraftPayload) error {
	raw, err := json.Marshal(m.composeSaveRequest(payload))
	if err != nil {
		return fmt.Errorf("failed to encode save operation: %w", err)
	}

	op := models.PendingOperation{
		ID:        m.uuid.Generate(),
		Type:      models.OpSaveDraft,
		Payload:   raw,
		DeviceID:  m.cfg.DeviceID,
		CreatedAt: time.Now(),
	}

	return m.queue.Append(ctx, op)
}

// ── state and events ────────────────────────────────────────────────────

// handleConnectivity reacts to a notifier transition: coming online
// publishes the event and requests a drain of whatever queued up offline.
func (m *syncManager) handleConnectivity(online bool) {
	if !m.setOnline(online) {
		return
	}

	if online {
		m.emit(models.EventOnline{})
		m.requestDrain()
		return
	}

	m.emit(models.EventOffline{})
}

// setOnline records the last seen verdict and reports whether it changed.
// Used only to dedupe notifier callbacks; decisions always consult the
// notifier directly through isOnline.
func (m *syncManager) setOnline(online bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := m.lastOnline != online
	m.lastOnline = online

	return changed
}

func (m *syncManager) isOnline() bool {
	return m.notifier.Online()
}

// beginDrain claims the single-flight drain slot. Refused while offline or
// while another drain is running.
func (m *syncManager) beginDrain() bool {
	if !m.isOnline() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.syncInProgress {
		return false
	}
	m.syncInProgress = true

	return true
}

func (m *syncManager) endDrain() {
	m.mu.Lock()
	m.syncInProgress = false
	m.mu.Unlock()
}

func (m *syncManager) markSynced() {
	now := time.Now()

	m.mu.Lock()
	m.lastSyncAt = &now
	m.lastError = ""
	m.mu.Unlock()
}

func (m *syncManager) noteSyncError(msg string) {
	m.mu.Lock()
	m.lastError = msg
	m.mu.Unlock()
}

func (m *syncManager) getSource() DraftSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.source
}

// requestDrain wakes the scheduler for a drain. Non-blocking: a pending
// wakeup already guarantees a future drain.
func (m *syncManager) requestDrain() {
	select {
	case m.drainCh <- struct{}{}:
	default:
	}
}

// requestRetry asks the scheduler to arm the fixed-delay retry timer.
func (m *syncManager) requestRetry() {
	select {
	case m.retryCh <- struct{}{}:
	default:
	}
}

// emit publishes ev without ever blocking the engine: when the buffer is
// full, the oldest event is dropped to make room. Best effort by contract.
func (m *syncManager) emit(ev models.SyncEvent) {
	select {
	case m.events <- ev:
		return
	default:
	}

	select {
	case <-m.events:
	default:
	}

	select {
	case m.events <- ev:
	default:
	}
}
