package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	draft, err := h.services.DraftService.SaveDraft(ctx, request)
	if err != nil {
		log.Err(err).Str("draft_key", request.DraftKey).Msg("error saving draft")
		http.Error(w, "error saving draft", statusFromError(err))
		return
	}

	log.Debug().Str("draft_key", draft.DraftKey).Int64("draft_id", draft.DraftID).Msg("draft saved")

	utils.WriteJSON(w, draft, http.StatusOK)
}

func (h *Handler) getDraftByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	draftID, err := draftIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid draft id")
		http.Error(w, "invalid draft id", http.StatusBadRequest)
		return
	}

	draft, err := h.services.DraftService.GetDraftByID(ctx, draftID)
	if err != nil {
		log.Err(err).Int64("draft_id", draftID).Msg("error getting draft")
		http.Error(w, "error getting draft", statusFromError(err))
		return
	}

	utils.WriteJSON(w, draft, http.StatusOK)
}

func (h *Handler) getDraftByKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	draftKey := chi.URLParam(r, "key")

	draft, err := h.services.DraftService.GetDraftByKey(ctx, draftKey)
	if err != nil {
		log.Err(err).Str("draft_key", draftKey).Msg("error getting draft by key")
		http.Error(w, "error getting draft by key", statusFromError(err))
		return
	}

	utils.WriteJSON(w, draft, http.StatusOK)
}

func (h *Handler) listDrafts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, err := listFilterFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid list query")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	drafts, err := h.services.DraftService.ListDrafts(ctx, filter)
	if err != nil {
		log.Err(err).Msg("error listing drafts")
		http.Error(w, "error listing drafts", statusFromError(err))
		return
	}

	// an empty fleet is a normal answer, not a null
	if drafts == nil {
		drafts = []models.Draft{}
	}

	utils.WriteJSON(w, drafts, http.StatusOK)
}

func (h *Handler) deleteDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	draftID, err := draftIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid draft id")
		http.Error(w, "invalid draft id", http.StatusBadRequest)
		return
	}

	if err = h.services.DraftService.DeleteDraft(ctx, draftID); err != nil {
		log.Err(err).Int64("draft_id", draftID).Msg("error deleting draft")
		http.Error(w, "error deleting draft", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) completeDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	draftID, err := draftIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid draft id")
		http.Error(w, "invalid draft id", http.StatusBadRequest)
		return
	}

	// the notes body is optional: a bare POST completes without notes
	var request models.CompleteDraftRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err = h.services.DraftService.CompleteDraft(ctx, draftID, request.Notes); err != nil {
		log.Err(err).Int64("draft_id", draftID).Msg("error completing draft")
		http.Error(w, "error completing draft", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func draftIDFromURL(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	draftID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid draft id %q", raw)
	}

	return draftID, nil
}

func listFilterFromQuery(r *http.Request) (models.ListDraftsFilter, error) {
	query := r.URL.Query()

	filter := models.ListDraftsFilter{
		DraftType:  models.DraftType(query.Get("draftType")),
		DeviceID:   query.Get("deviceId"),
		RegisterID: query.Get("registerId"),
	}

	if raw := query.Get("includeExpired"); raw != "" {
		includeExpired, err := strconv.ParseBool(raw)
		if err != nil {
			return models.ListDraftsFilter{}, fmt.Errorf("invalid includeExpired parameter")
		}
		filter.IncludeExpired = includeExpired
	}

	var err error
	if filter.Limit, err = intQueryParam(query, "limit"); err != nil {
		return models.ListDraftsFilter{}, err
	}
	if filter.Offset, err = intQueryParam(query, "offset"); err != nil {
		return models.ListDraftsFilter{}, err
	}

	return filter, nil
}

func intQueryParam(query url.Values, name string) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	return value, nil
}
