package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/adapter"
	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
)

var _ Client = (*App)(nil)

// App assembles the register-side engine: the dual KV store, the draft
// service adapter, the connectivity notifier, the sync manager and the
// working cart bound to the manager's dirty hook.
type App struct {
	cfg      *config.ClientConfig
	logger   *logger.Logger
	kv       store.KVStore
	api      adapter.DraftAPI
	notifier service.ConnectivityNotifier
	manager  service.SyncManager
	cart     service.DraftStore
	deviceID string
	draftKey string

	engineUp bool
}

// NewApp wires the engine from cfg. Construction is offline-safe: the
// device identity is ensured in local storage, but nothing touches the
// network until an action that needs it runs.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	fallback, err := store.NewFileKV(cfg.Storage.FilePath, log)
	if err != nil {
		return nil, fmt.Errorf("create fallback storage: %w", err)
	}

	var primary store.KVStore
	if cfg.Storage.DB.DSN != "" {
		primary, err = store.NewSQLiteKV(ctx, cfg.Storage.DB, log)
		if err != nil {
			// Регистр продолжает работать на одном fallback-хранилище.
			log.Warn().Err(err).Msg("sqlite store unavailable, continuing on file fallback")
			primary = nil
		}
	}

	kv := store.NewDualKV(ctx, primary, fallback, log)

	deviceID, err := store.EnsureDeviceID(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("ensure device id: %w", err)
	}

	api, err := adapter.NewHTTPDraftAPI(cfg.Adapter, log)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("create draft api: %w", err)
	}
	api.SetDeviceID(deviceID)
	if cfg.Adapter.Token != "" {
		api.SetToken(cfg.Adapter.Token)
	}

	notifier := service.NewPollingNotifier(api, cfg.Engine.PingInterval, log)

	draftType := models.DraftType(cfg.Engine.DraftType)
	if draftType == "" {
		draftType = models.DraftTypeSale
	}

	// Явный user id в конфиге главнее; иначе личность берётся из subject
	// выданного токена.
	userID := cfg.Engine.UserID
	if userID == 0 {
		userID, err = utils.ParseUserIDFromJWT(cfg.Adapter.Token)
		if err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("resolve user id from token: %w", err)
		}
	}

	manager, err := service.NewSyncManager(kv, api, notifier, service.SyncConfig{
		DeviceID:         deviceID,
		RegisterID:       cfg.Engine.RegisterID,
		UserID:           userID,
		DraftType:        draftType,
		MaxRetries:       cfg.Engine.MaxRetries,
		RetryDelay:       cfg.Engine.RetryDelay,
		AutoSaveInterval: cfg.Engine.AutoSaveInterval,
		DebounceDelay:    cfg.Engine.DebounceDelay,
	}, log)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("create sync manager: %w", err)
	}

	cart := service.NewDraftStore(nil, manager.MarkDirty)
	manager.AttachSource(cart)

	return &App{
		cfg:      cfg,
		logger:   log,
		kv:       kv,
		api:      api,
		notifier: notifier,
		manager:  manager,
		cart:     cart,
		deviceID: deviceID,
		draftKey: models.BuildDraftKey(deviceID, userID, draftType),
	}, nil
}

// Run executes one register action and returns. The first positional
// argument picks the action; no argument means "status".
func (a *App) Run(ctx context.Context, args []string) error {
	action := "status"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "status":
		return a.status(ctx)
	case "drain":
		return a.drain(ctx)
	case "recover":
		return a.recoverDraft(ctx)
	case "list":
		return a.list(ctx)
	default:
		return fmt.Errorf("unknown action %q: want status, drain, recover or list", action)
	}
}

// Stop winds the engine down in reverse dependency order and closes the
// durable store. Safe to call whether or not the engine was started.
func (a *App) Stop() {
	a.manager.Stop()
	a.notifier.Stop()

	if err := a.kv.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("error closing local storage")
	}
}

// startEngine brings the notifier and the sync manager up for actions that
// need a live connectivity verdict. The notifier's first probe runs
// synchronously, so the online flag is settled by the time the manager
// starts.
func (a *App) startEngine(ctx context.Context) error {
	if a.engineUp {
		return nil
	}

	a.notifier.Start(ctx)
	if err := a.manager.Start(ctx); err != nil {
		a.notifier.Stop()
		return fmt.Errorf("start sync manager: %w", err)
	}

	a.engineUp = true
	return nil
}

// status reports the register's durable state without starting the engine:
// starting the manager while online would immediately drain the queue, and
// a status check must not have side effects.
func (a *App) status(ctx context.Context) error {
	fmt.Printf("Device: %s\n", a.deviceID)
	fmt.Printf("Draft key: %s\n", a.draftKey)

	if err := a.api.Ping(ctx); err != nil {
		fmt.Println("Draft service: unreachable")
	} else {
		fmt.Println("Draft service: reachable")
	}

	fmt.Printf("Pending operations: %d\n", a.manager.GetPendingCount(ctx))

	// Без запущенного движка LoadDraft читает только локальный кеш.
	draft, err := a.manager.LoadDraft(ctx)
	switch {
	case err != nil:
		fmt.Printf("Cached draft: unreadable (%v)\n", err)
	case draft == nil:
		fmt.Println("Cached draft: none")
	default:
		fmt.Printf("Cached draft: %d items, %s, saved %s\n",
			draft.ItemCount, formatCents(draft.TotalCents), draft.SavedAt.Format(time.RFC3339))
	}

	return nil
}

// drain submits the pending-operation queue once. Only the notifier is
// brought up, not the whole manager: its first probe runs synchronously,
// giving ForceSync a live online verdict without racing the drain the
// manager would request on Start. A register that is plainly offline does
// not burn the operations' retry budget on a doomed attempt.
func (a *App) drain(ctx context.Context) error {
	pending := a.manager.GetPendingCount(ctx)
	fmt.Printf("Pending operations: %d\n", pending)
	if pending == 0 {
		return nil
	}

	a.notifier.Start(ctx)
	if !a.notifier.Online() {
		return errors.New("draft service unreachable, operations stay queued")
	}

	if err := a.manager.ForceSync(ctx); err != nil {
		return fmt.Errorf("drain failed: %w", err)
	}

	for _, ev := range a.collectEvents() {
		switch e := ev.(type) {
		case models.EventOperationFailed:
			if e.Permanent {
				fmt.Printf("Operation %s dropped: %s\n", e.OpID, e.Message)
			}
		case models.EventSyncCompleted:
			fmt.Printf("Synced %d operations.\n", e.Synced)
		case models.EventSyncFailed:
			fmt.Printf("Sync incomplete, %d operations still queued.\n", e.Remaining)
		}
	}

	return nil
}

// recoverDraft restores the most recent durable draft into the working
// cart. The engine is started first: with a live online verdict the
// server-canonical copy wins over the device cache, and operations left
// over from a previous session start draining in the background.
func (a *App) recoverDraft(ctx context.Context) error {
	if err := a.startEngine(ctx); err != nil {
		return err
	}

	draft, err := a.manager.LoadDraft(ctx)
	if err != nil {
		return fmt.Errorf("recover draft: %w", err)
	}
	if draft == nil {
		fmt.Println("No draft to recover.")
		return nil
	}

	a.cart.Restore(draft.Payload)
	items, total := a.cart.Totals()

	source := "server"
	if draft.Local {
		source = "device"
	}

	fmt.Printf("Recovered %s %s from the %s.\n", draft.DraftType, draft.DraftKey, source)
	fmt.Printf("Items: %d, total: %s", items, formatCents(total))
	if draft.CustomerName != "" {
		fmt.Printf(", customer: %s", draft.CustomerName)
	}
	fmt.Println()

	return nil
}

// list prints the drafts the service holds for this device. Requires the
// service to be reachable; there is nothing meaningful to list offline.
func (a *App) list(ctx context.Context) error {
	drafts, err := a.api.ListDrafts(ctx, models.ListDraftsFilter{DeviceID: a.deviceID})
	if err != nil {
		return fmt.Errorf("list drafts: %w", err)
	}

	if len(drafts) == 0 {
		fmt.Println("The draft service holds no drafts for this device.")
		return nil
	}

	for _, d := range drafts {
		line := fmt.Sprintf("#%d %s: %d items, %s", d.DraftID, d.DraftKey, d.ItemCount, formatCents(d.TotalCents))
		if d.CustomerName != "" {
			line += ", customer " + d.CustomerName
		}
		if d.Completed {
			line += " (completed)"
		}
		fmt.Println(line)
	}

	return nil
}

// collectEvents empties the manager's buffered event channel without
// blocking. Events the manager emitted during a synchronous call are
// already in the buffer by the time the call returns.
func (a *App) collectEvents() []models.SyncEvent {
	var events []models.SyncEvent
	for {
		select {
		case ev := <-a.manager.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

// formatCents renders a cent amount as dollars for operator output.
// Cart totals are clamped non-negative upstream.
func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
