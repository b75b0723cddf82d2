package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
)

// withLogging emits one structured line per request after the handler
// returns: method, uri, status, duration and response size. Registers
// retry aggressively after an outage, so the per-request line is the
// primary tool for spotting a device stuck in a retry loop.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("device_id", r.Header.Get(deviceIDHeader)).
			Int("status", rec.code).
			Dur("duration", time.Since(start)).
			Int("size", rec.bytes).
			Send()
	})
}
