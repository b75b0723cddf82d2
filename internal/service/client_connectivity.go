package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/adapter"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
)

const defaultPingInterval = 10 * time.Second

// pollingNotifier derives connectivity from periodic pings of the draft
// service. Subscribers are notified on transitions only, not on every
// probe: a register that stays offline for an hour produces one callback,
// not 360.
type pollingNotifier struct {
	api      adapter.DraftAPI
	interval time.Duration
	logger   *logger.Logger

	mu          sync.Mutex
	online      bool
	subscribers map[int]func(online bool)
	nextID      int
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewPollingNotifier creates a notifier that probes api on the given
// interval. A non-positive interval falls back to 10 seconds. The notifier
// reports offline until Start has run its first probe.
func NewPollingNotifier(api adapter.DraftAPI, interval time.Duration, logger *logger.Logger) ConnectivityNotifier {
	if interval <= 0 {
		interval = defaultPingInterval
	}

	return &pollingNotifier{
		api:         api,
		interval:    interval,
		logger:      logger,
		subscribers: make(map[int]func(online bool)),
	}
}

// Start implements ConnectivityNotifier. It stops any previous probe loop,
// runs one probe synchronously so Online is meaningful immediately after
// Start returns, then keeps probing on the interval until ctx is cancelled
// or Stop is called.
func (n *pollingNotifier) Start(ctx context.Context) {
	n.Stop()

	n.mu.Lock()
	probeCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.wg.Add(1)
	n.mu.Unlock()

	n.probe(probeCtx)

	go func() {
		defer n.wg.Done()
		t := time.NewTicker(n.interval)
		defer t.Stop()

		for {
			select {
			case <-probeCtx.Done():
				return
			case <-t.C:
				n.probe(probeCtx)
			}
		}
	}()
}

// Stop implements ConnectivityNotifier. It cancels the probe loop and blocks
// until the goroutine has exited. Safe to call when not running.
func (n *pollingNotifier) Stop() {
	n.mu.Lock()
	cancel := n.cancel
	n.cancel = nil
	n.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	n.wg.Wait()
}

// Subscribe implements Notifier.
func (n *pollingNotifier) Subscribe(fn func(online bool)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subscribers[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subscribers, id)
		n.mu.Unlock()
	}
}

// Online implements Notifier.
func (n *pollingNotifier) Online() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.online
}

// probe pings the service once and records the verdict, notifying
// subscribers on a transition. Callbacks run outside the lock so a
// subscriber may call back into the notifier.
func (n *pollingNotifier) probe(ctx context.Context) {
	err := n.api.Ping(ctx)
	online := err == nil

	n.mu.Lock()
	changed := online != n.online
	n.online = online
	var fns []func(online bool)
	if changed {
		fns = make([]func(online bool), 0, len(n.subscribers))
		for _, fn := range n.subscribers {
			fns = append(fns, fn)
		}
	}
	n.mu.Unlock()

	if !changed {
		return
	}

	if online {
		n.logger.Info().Msg("draft service reachable")
	} else {
		n.logger.Warn().Err(err).Msg("draft service unreachable")
	}

	for _, fn := range fns {
		fn(online)
	}
}
