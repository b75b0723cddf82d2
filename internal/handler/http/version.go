package http

import (
	"net/http"
)

// getServerVersion reports the deployed service version as plain text.
// Registers log it on reconnect, which is how ops confirms the fleet talks
// to the build it expects.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(version))
}
