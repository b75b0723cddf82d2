package http

import (
	"net/http"
)

// ping answers connectivity probes from registers. Reachability is the whole
// contract: the connectivity notifier on the register flips to online as soon
// as this endpoint answers.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("pong"))
}
