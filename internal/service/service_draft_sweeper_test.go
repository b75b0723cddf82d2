package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountingSweeper(purgeErr error) (DraftSweeper, *atomic.Int64) {
	var calls atomic.Int64
	repository := &mockDraftRepository{
		purgeFn: func(_ context.Context, _ time.Duration) (int64, error) {
			calls.Add(1)
			return 1, purgeErr
		},
	}
	return NewDraftSweeper(repository, config.Drafts{JournalRetention: 24 * time.Hour}, logger.Nop()), &calls
}

// ── NewDraftSweeper ──────────────────────────────────────────────────────────

func TestNewDraftSweeper_ReturnsInterface(t *testing.T) {
	sweeper := NewDraftSweeper(&mockDraftRepository{}, config.Drafts{}, logger.Nop())
	require.NotNil(t, sweeper)

	var _ DraftSweeper = sweeper
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestDraftSweeper_Start_CallsPurge(t *testing.T) {
	sweeper, calls := newCountingSweeper(nil)
	ctx := context.Background()

	// Интервал 10ms — за 55ms должно быть ~5 тиков
	sweeper.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	sweeper.Stop()

	got := calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "PurgeExpired должен быть вызван несколько раз, вызвано: %d", got)
}

func TestDraftSweeper_Stop_StopsGoroutine(t *testing.T) {
	sweeper, calls := newCountingSweeper(nil)
	ctx := context.Background()

	sweeper.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()

	callsAfterStop := calls.Load()
	time.Sleep(30 * time.Millisecond)
	callsLater := calls.Load()

	assert.Equal(t, callsAfterStop, callsLater, "после Stop новых вызовов быть не должно")
}

func TestDraftSweeper_Stop_BeforeStart_NoPanic(t *testing.T) {
	sweeper, _ := newCountingSweeper(nil)

	// Stop без Start не должен паниковать
	assert.NotPanics(t, func() { sweeper.Stop() })
}

func TestDraftSweeper_DoubleStop_NoPanic(t *testing.T) {
	sweeper, _ := newCountingSweeper(nil)
	ctx := context.Background()

	sweeper.Start(ctx, 10*time.Millisecond)
	sweeper.Stop()

	assert.NotPanics(t, func() { sweeper.Stop() })
}

func TestDraftSweeper_Start_DefaultInterval(t *testing.T) {
	sweeper, calls := newCountingSweeper(nil)
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 → дефолт 1 час, за 20ms вызовов быть не должно
	sweeper.Start(ctx, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	sweeper.Stop()

	assert.Equal(t, int64(0), calls.Load())
}

func TestDraftSweeper_Restart_StopsPrevious(t *testing.T) {
	sweeper, calls := newCountingSweeper(nil)
	ctx := context.Background()

	sweeper.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// Повторный Start внутри вызовет Stop() предыдущего цикла
	sweeper.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()

	assert.Greater(t, calls.Load(), callsBefore, "после перезапуска вызовы должны продолжаться")
}

func TestDraftSweeper_ContextCancel_StopsSweeper(t *testing.T) {
	sweeper, _ := newCountingSweeper(nil)
	ctx, cancel := context.WithCancel(context.Background())

	sweeper.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	// Stop должен вернуться без зависания
	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
		// ok
	case <-time.After(1 * time.Second):
		t.Fatal("Stop завис после отмены контекста")
	}
}

func TestDraftSweeper_PurgeError_DoesNotStopSweeper(t *testing.T) {
	sweeper, calls := newCountingSweeper(assert.AnError)
	ctx := context.Background()

	// PurgeExpired возвращает ошибку, но цикл продолжает работать
	sweeper.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	sweeper.Stop()

	got := calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "несмотря на ошибки, PurgeExpired продолжает вызываться: %d", got)
}

func TestDraftSweeper_PassesRetention(t *testing.T) {
	var captured atomic.Int64

	repository := &mockDraftRepository{
		purgeFn: func(_ context.Context, retention time.Duration) (int64, error) {
			captured.Store(int64(retention))
			return 0, nil
		},
	}
	sweeper := NewDraftSweeper(repository, config.Drafts{JournalRetention: 72 * time.Hour}, logger.Nop())
	ctx := context.Background()

	sweeper.Start(ctx, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	sweeper.Stop()

	assert.Equal(t, int64(72*time.Hour), captured.Load(), "retention из конфига должен доходить до хранилища")
}
