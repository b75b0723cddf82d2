package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
	"github.com/go-resty/resty/v2"
)

// contentHashHeader carries the hex-encoded SHA-256 digest of the request
// body on batch sync submissions. The server verifies it when present.
const contentHashHeader = "X-Content-Hash"

// deviceIDHeader carries the register's durable device identity on every
// authenticated request. The server reads it as the fallback device scope.
const deviceIDHeader = "X-Device-ID"

type httpDraftAPI struct {
	client *utils.HTTPClient

	token    string
	deviceID string

	logger *logger.Logger
}

// NewHTTPDraftAPI constructs the HTTP/REST implementation of [DraftAPI].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPDraftAPI(cfg config.ClientAdapter, logger *logger.Logger) (DraftAPI, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpDraftAPI{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [DraftAPI]. It stores token (whitespace-trimmed) for use
// in the Authorization header of all subsequent requests.
func (h *httpDraftAPI) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [DraftAPI]. It returns the bearer token currently held by
// the adapter, or an empty string if none has been set.
func (h *httpDraftAPI) Token() string {
	return h.token
}

// SetDeviceID implements [DraftAPI]. It stores deviceID (whitespace-trimmed)
// for use in the X-Device-ID header of all subsequent requests.
func (h *httpDraftAPI) SetDeviceID(deviceID string) {
	h.deviceID = strings.TrimSpace(deviceID)
}

// SaveDraft implements [DraftAPI]. It POSTs the upsert request to
// POST /drafts and returns the canonical server-side draft, including the
// server-assigned DraftID. Returns an error if the request fails or the
// server responds with a non-2xx status.
func (h *httpDraftAPI) SaveDraft(ctx context.Context, req models.SaveDraftRequest) (models.Draft, error) {
	var draft models.Draft

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&draft).
		Post("/drafts")
	if err != nil {
		return models.Draft{}, fmt.Errorf("save draft request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Draft{}, err
	}

	return draft, nil
}

// GetDraft implements [DraftAPI]. It GETs /drafts/:id and decodes the
// response. A 404 converts to (nil, nil): no draft to recover is a normal
// outcome, not an error.
func (h *httpDraftAPI) GetDraft(ctx context.Context, draftID int64) (*models.Draft, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(draftID, 10)).
		Get("/drafts/{id}")
	if err != nil {
		return nil, fmt.Errorf("get draft request: %w", err)
	}

	return decodeDraftResponse(resp)
}

// GetDraftByKey implements [DraftAPI]. It GETs /drafts/key/:key and decodes
// the response. A 404 converts to (nil, nil).
func (h *httpDraftAPI) GetDraftByKey(ctx context.Context, draftKey string) (*models.Draft, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("key", draftKey).
		Get("/drafts/key/{key}")
	if err != nil {
		return nil, fmt.Errorf("get draft by key request: %w", err)
	}

	return decodeDraftResponse(resp)
}

func decodeDraftResponse(resp *resty.Response) (*models.Draft, error) {
	if mapped := mapHTTPError(resp); mapped != nil {
		// absence is a normal outcome of "no draft to recover"
		if errors.Is(mapped, ErrNotFound) {
			return nil, nil
		}
		return nil, mapped
	}

	var draft models.Draft
	if err := json.Unmarshal(resp.Body(), &draft); err != nil {
		return nil, fmt.Errorf("decode draft response: %w", err)
	}

	return &draft, nil
}

// ListDrafts implements [DraftAPI]. It GETs /drafts with the filter encoded
// as query parameters and decodes the response into a [models.Draft] slice.
func (h *httpDraftAPI) ListDrafts(ctx context.Context, filter models.ListDraftsFilter) ([]models.Draft, error) {
	req := h.authedRequest(ctx)

	if filter.DraftType != "" {
		req.SetQueryParam("draftType", string(filter.DraftType))
	}
	if filter.DeviceID != "" {
		req.SetQueryParam("deviceId", filter.DeviceID)
	}
	if filter.RegisterID != "" {
		req.SetQueryParam("registerId", filter.RegisterID)
	}
	if filter.IncludeExpired {
		req.SetQueryParam("includeExpired", "true")
	}
	if filter.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(filter.Offset))
	}

	resp, err := req.Get("/drafts")
	if err != nil {
		return nil, fmt.Errorf("list drafts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var drafts []models.Draft
	if err = json.Unmarshal(resp.Body(), &drafts); err != nil {
		return nil, fmt.Errorf("decode list drafts response: %w", err)
	}

	return drafts, nil
}

// DeleteDraft implements [DraftAPI]. It sends DELETE /drafts/:id. Returns
// [ErrNotFound] (wrapped) when the draft does not exist.
func (h *httpDraftAPI) DeleteDraft(ctx context.Context, draftID int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(draftID, 10)).
		Delete("/drafts/{id}")
	if err != nil {
		return fmt.Errorf("delete draft request: %w", err)
	}

	return mapHTTPError(resp)
}

// CompleteDraft implements [DraftAPI]. It POSTs the terminal transition to
// POST /drafts/:id/complete. The server treats the transition as idempotent,
// so replaying a complete succeeds.
func (h *httpDraftAPI) CompleteDraft(ctx context.Context, draftID int64, notes string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(draftID, 10)).
		SetBody(models.CompleteDraftRequest{Notes: notes}).
		Post("/drafts/{id}/complete")
	if err != nil {
		return fmt.Errorf("complete draft request: %w", err)
	}

	return mapHTTPError(resp)
}

// BatchSync implements [DraftAPI]. It POSTs the full pending-operation queue
// to POST /drafts/sync and decodes the per-operation results. A transport
// failure means the whole batch is unconfirmed; the caller retries every
// operation.
//
// The request body is marshalled here rather than by resty so that its
// SHA-256 digest can be sent in the X-Content-Hash header. Store networks
// sit behind proxies of varying quality; the server rejects a batch whose
// body does not match the digest instead of applying a truncated queue.
func (h *httpDraftAPI) BatchSync(ctx context.Context, req models.BatchSyncRequest) (models.BatchSyncResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.BatchSyncResponse{}, fmt.Errorf("encode batch sync request: %w", err)
	}

	var out models.BatchSyncResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(contentHashHeader, utils.HashHex(body)).
		SetBody(body).
		SetResult(&out).
		Post("/drafts/sync")
	if err != nil {
		return models.BatchSyncResponse{}, fmt.Errorf("batch sync request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BatchSyncResponse{}, err
	}

	return out, nil
}

// PendingOperations implements [DraftAPI]. It GETs the diagnostic journal
// mirror GET /drafts/sync/pending and decodes the response into a
// [models.PendingOperation] slice.
func (h *httpDraftAPI) PendingOperations(ctx context.Context, deviceID string, limit int) ([]models.PendingOperation, error) {
	req := h.authedRequest(ctx).SetQueryParam("deviceId", deviceID)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/drafts/sync/pending")
	if err != nil {
		return nil, fmt.Errorf("pending operations request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var ops []models.PendingOperation
	if err = json.Unmarshal(resp.Body(), &ops); err != nil {
		return nil, fmt.Errorf("decode pending operations response: %w", err)
	}

	return ops, nil
}

// Ping implements [DraftAPI]. It GETs the unauthenticated /ping endpoint.
// Used by the connectivity notifier; any error, transport or HTTP, means
// the draft service is unreachable.
func (h *httpDraftAPI) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/ping")
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpDraftAPI) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if h.deviceID != "" {
		req.SetHeader(deviceIDHeader, h.deviceID)
	}
	return req
}
