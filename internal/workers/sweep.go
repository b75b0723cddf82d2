package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/service"
)

// SweepWorker drives the server-side draft sweeper on its configured
// cadence.
type SweepWorker struct {
	sweeper  service.DraftSweeper
	interval time.Duration
}

// NewSweepWorker wraps sweeper as a [Worker]. A non-positive interval
// disables sweeping entirely: Run becomes a no-op.
func NewSweepWorker(sweeper service.DraftSweeper, interval time.Duration) *SweepWorker {
	return &SweepWorker{sweeper: sweeper, interval: interval}
}

// Run implements Worker.
func (w *SweepWorker) Run() {
	if w.interval <= 0 {
		return
	}

	w.sweeper.Start(context.Background(), w.interval)
}

// Stop implements Worker.
func (w *SweepWorker) Stop() {
	w.sweeper.Stop()
}
