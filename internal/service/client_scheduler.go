package service

import (
	"context"
	"errors"
	"time"
)

// run is the manager's single scheduler goroutine. It owns every timer the
// engine uses (auto-save ticker, debounce timer, drain-retry timer) so
// that cancelling the run context tears all of them down in one place and
// no timer survives a manager restart.
func (m *syncManager) run(ctx context.Context) {
	defer m.wg.Done()

	autosave := time.NewTicker(m.cfg.AutoSaveInterval)
	defer autosave.Stop()

	debounce := newStoppedTimer()
	defer debounce.Stop()

	retry := newStoppedTimer()
	defer retry.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-m.dirtyCh:
			// Каждая правка корзины сдвигает отложенное сохранение.
			resetTimer(debounce, m.cfg.DebounceDelay)

		case <-debounce.C:
			m.saveSnapshot(ctx, false)

		case <-autosave.C:
			m.saveSnapshot(ctx, true)

		case <-m.drainCh:
			m.drain(ctx)

		case <-m.retryCh:
			resetTimer(retry, m.cfg.RetryDelay)

		case <-retry.C:
			m.drain(ctx)
		}
	}
}

// drain runs one drain attempt from the scheduler. Failures are already
// published as events, so here they are only logged.
func (m *syncManager) drain(ctx context.Context) {
	if err := m.processPendingOperations(ctx); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Warn().Err(err).Msg("drain attempt failed")
	}
}

// saveSnapshot persists the attached draft source's current state through
// the regular save path. Auto-save skips empty carts; the debounced save
// does not, because an edit that emptied the cart still deserves a durable
// record.
func (m *syncManager) saveSnapshot(ctx context.Context, skipEmpty bool) {
	src := m.getSource()
	if src == nil {
		return
	}
	if skipEmpty && src.IsEmpty() {
		return
	}

	if _, err := m.SaveDraft(ctx, src.Snapshot(), false); err != nil {
		m.logger.Error().Err(err).Msg("scheduled draft save failed")
	}
}

// newStoppedTimer returns a timer that will not fire until reset.
func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}

	return t
}

// resetTimer re-arms t for d, draining a pending fire first so the timer
// counts a fresh delay from now.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
