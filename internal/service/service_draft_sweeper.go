package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
)

// DraftSweeper periodically removes expired drafts and stale journal
// entries from the server store.
type DraftSweeper interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type draftSweeper struct {
	draftRepository  store.DraftRepository
	journalRetention time.Duration
	logger           *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDraftSweeper creates a draftSweeper that calls PurgeExpired on a
// ticker. The sweeper is idle until Start is called.
func NewDraftSweeper(draftRepository store.DraftRepository, cfg config.Drafts, logger *logger.Logger) DraftSweeper {
	return &draftSweeper{
		draftRepository:  draftRepository,
		journalRetention: cfg.JournalRetention,
		logger:           logger,
	}
}

// Start implements DraftSweeper. It stops any previously running sweep
// loop, then launches a background goroutine that purges expired rows every
// interval. If interval is zero or negative it defaults to 1 hour. The
// goroutine exits when ctx is cancelled or Stop is called.
func (s *draftSweeper) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				s.sweep(jobCtx)
			}
		}
	}()
}

// Stop implements DraftSweeper. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call
// when the sweeper is not running (no-op in that case).
func (s *draftSweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// sweep runs one purge round. A failed round is logged and retried on the
// next tick; the loop never dies on storage errors.
func (s *draftSweeper) sweep(ctx context.Context) {
	purged, err := s.draftRepository.PurgeExpired(ctx, s.journalRetention)
	if err != nil {
		s.logger.Err(err).Msg("draft sweep ended with error")
		return
	}

	if purged > 0 {
		s.logger.Info().Int64("purged", purged).Msg("expired drafts purged")
	}
}
