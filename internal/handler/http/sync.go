package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
)

func (h *Handler) batchSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.BatchSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.batchSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.DraftService.ProcessBatch(ctx, request)
	if err != nil {
		log.Err(err).Str("device_id", request.DeviceID).Msg("error processing sync batch")
		http.Error(w, "error processing sync batch", statusFromError(err))
		return
	}

	log.Debug().
		Str("device_id", request.DeviceID).
		Int("operations", len(request.Operations)).
		Msg("sync batch processed")

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) pendingOperations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		// registers that omit the parameter still identify themselves by header
		deviceID, _ = utils.GetDeviceIDFromContext(ctx)
	}

	limit, err := intQueryParam(r.URL.Query(), "limit")
	if err != nil {
		log.Err(err).Str("func", "*Handler.pendingOperations").Msg("invalid limit parameter")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	operations, err := h.services.DraftService.PendingOperations(ctx, deviceID, limit)
	if err != nil {
		log.Err(err).Str("device_id", deviceID).Msg("error getting pending operations")
		http.Error(w, "error getting pending operations", statusFromError(err))
		return
	}

	if operations == nil {
		operations = []models.PendingOperation{}
	}

	utils.WriteJSON(w, operations, http.StatusOK)
}
