package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/mock"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/internal/validators"
	"github.com/MKhiriev/go-cart-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerForDrafts builds a Handler with the given DraftService mock,
// reusing the mocks already declared in routes_test.go.
func newHandlerForDrafts(t *testing.T, svc service.DraftService) *Handler {
	t.Helper()
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			TokenService:   &mockTokenSvc{},
			AppInfoService: &mockAppInfoSvc{},
			DraftService:   svc,
		},
	}
}

// encodeBody serialises v to JSON and returns it as an io.Reader.
func encodeBody(t *testing.T, v any) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

// withURLParam injects a chi route parameter so handler methods can be
// called directly, without going through the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ─────────────────────────────────────────────
// saveDraft
// ─────────────────────────────────────────────

func TestSaveDraft_Success(t *testing.T) {
	called := false
	svc := &mockDraftSvc{
		saveFn: func(_ context.Context, req models.SaveDraftRequest) (models.Draft, error) {
			called = true
			assert.Equal(t, "reg-7:42:sale_draft", req.DraftKey)
			assert.Equal(t, "reg-7", req.DeviceID)
			assert.Equal(t, int64(42), req.UserID)
			return models.Draft{DraftID: 101, DraftKey: req.DraftKey, ItemCount: 2, TotalCents: 1000}, nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	body := models.SaveDraftRequest{
		DraftKey:  "reg-7:42:sale_draft",
		DraftType: models.DraftTypeSale,
		DeviceID:  "reg-7",
		UserID:    42,
		Payload: models.DraftPayload{
			Items: []models.LineItem{{SKU: "SKU-1", Name: "Mug", Quantity: 2, UnitCents: 500}},
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/drafts", encodeBody(t, body))
	rec := httptest.NewRecorder()

	h.saveDraft(rec, req)

	assert.True(t, called, "SaveDraft should have been called")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, int64(101), result.DraftID)
	assert.Equal(t, "reg-7:42:sale_draft", result.DraftKey)
	assert.Equal(t, 2, result.ItemCount)
	assert.Equal(t, int64(1000), result.TotalCents)
}

func TestSaveDraft_InvalidJSON(t *testing.T) {
	h := newHandlerForDrafts(t, &mockDraftSvc{})
	req := httptest.NewRequest(http.MethodPost, "/drafts", strings.NewReader(`{bad json}`))
	rec := httptest.NewRecorder()

	h.saveDraft(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

func TestSaveDraft_EmptyBody(t *testing.T) {
	h := newHandlerForDrafts(t, &mockDraftSvc{})
	req := httptest.NewRequest(http.MethodPost, "/drafts", strings.NewReader(""))
	rec := httptest.NewRecorder()

	h.saveDraft(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveDraft_ServiceError(t *testing.T) {
	svc := &mockDraftSvc{
		saveFn: func(_ context.Context, _ models.SaveDraftRequest) (models.Draft, error) {
			return models.Draft{}, errors.New("storage failure")
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := httptest.NewRequest(http.MethodPost, "/drafts",
		encodeBody(t, models.SaveDraftRequest{DraftKey: "reg-1:1:sale_draft"}))
	rec := httptest.NewRecorder()

	h.saveDraft(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error saving draft")
}

func TestSaveDraft_ForeignUserMapsTo403(t *testing.T) {
	svc := &mockDraftSvc{
		saveFn: func(_ context.Context, _ models.SaveDraftRequest) (models.Draft, error) {
			return models.Draft{}, service.ErrUnauthorizedAccessToDifferentUserData
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := httptest.NewRequest(http.MethodPost, "/drafts",
		encodeBody(t, models.SaveDraftRequest{DraftKey: "reg-1:1:sale_draft"}))
	rec := httptest.NewRecorder()

	h.saveDraft(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ─────────────────────────────────────────────
// getDraftByID
// ─────────────────────────────────────────────

func TestGetDraftByID_Success(t *testing.T) {
	expected := models.Draft{DraftID: 7, DraftKey: "reg-7:42:sale_draft", ItemCount: 3}
	svc := &mockDraftSvc{
		getByIDFn: func(_ context.Context, draftID int64) (models.Draft, error) {
			assert.Equal(t, int64(7), draftID)
			return expected, nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/drafts/7", nil), "id", "7")
	rec := httptest.NewRecorder()

	h.getDraftByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, expected, result)
}

func TestGetDraftByID_InvalidID(t *testing.T) {
	svc := &mockDraftSvc{
		getByIDFn: func(_ context.Context, _ int64) (models.Draft, error) {
			t.Fatal("service should not be called for a malformed id")
			return models.Draft{}, nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/drafts/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()

	h.getDraftByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid draft id")
}

func TestGetDraftByID_NotFound(t *testing.T) {
	svc := &mockDraftSvc{
		getByIDFn: func(_ context.Context, _ int64) (models.Draft, error) {
			return models.Draft{}, store.ErrDraftNotFound
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/drafts/999", nil), "id", "999")
	rec := httptest.NewRecorder()

	h.getDraftByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// getDraftByKey
// ─────────────────────────────────────────────

func TestGetDraftByKey_Success(t *testing.T) {
	expected := models.Draft{DraftID: 12, DraftKey: "reg-7:42:sale_draft"}
	svc := &mockDraftSvc{
		getByKeyFn: func(_ context.Context, draftKey string) (models.Draft, error) {
			assert.Equal(t, "reg-7:42:sale_draft", draftKey)
			return expected, nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(
		httptest.NewRequest(http.MethodGet, "/drafts/key/reg-7:42:sale_draft", nil),
		"key", "reg-7:42:sale_draft")
	rec := httptest.NewRecorder()

	h.getDraftByKey(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, expected, result)
}

func TestGetDraftByKey_MalformedKeyMapsTo400(t *testing.T) {
	svc := &mockDraftSvc{
		getByKeyFn: func(_ context.Context, _ string) (models.Draft, error) {
			return models.Draft{}, validators.ErrMalformedDraftKey
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/drafts/key/garbage", nil), "key", "garbage")
	rec := httptest.NewRecorder()

	h.getDraftByKey(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDraftByKey_NotFound(t *testing.T) {
	svc := &mockDraftSvc{
		getByKeyFn: func(_ context.Context, _ string) (models.Draft, error) {
			return models.Draft{}, store.ErrDraftNotFound
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(
		httptest.NewRequest(http.MethodGet, "/drafts/key/reg-9:1:sale_draft", nil),
		"key", "reg-9:1:sale_draft")
	rec := httptest.NewRecorder()

	h.getDraftByKey(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// listDrafts
// ─────────────────────────────────────────────

func TestListDrafts_Success(t *testing.T) {
	expected := []models.Draft{
		{DraftID: 1, DraftKey: "reg-7:42:sale_draft"},
		{DraftID: 2, DraftKey: "reg-8:42:sale_draft"},
	}
	svc := &mockDraftSvc{
		listFn: func(_ context.Context, filter models.ListDraftsFilter) ([]models.Draft, error) {
			assert.Equal(t, models.DraftTypeSale, filter.DraftType)
			assert.Equal(t, "reg-7", filter.DeviceID)
			assert.Equal(t, "REG-01", filter.RegisterID)
			assert.True(t, filter.IncludeExpired)
			assert.Equal(t, 10, filter.Limit)
			assert.Equal(t, 20, filter.Offset)
			return expected, nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := httptest.NewRequest(http.MethodGet,
		"/drafts?draftType=sale_draft&deviceId=reg-7&registerId=REG-01&includeExpired=true&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()

	h.listDrafts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result []models.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, expected, result)
}

func TestListDrafts_EmptyResultIsArray(t *testing.T) {
	svc := &mockDraftSvc{
		listFn: func(_ context.Context, _ models.ListDraftsFilter) ([]models.Draft, error) {
			return nil, nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := httptest.NewRequest(http.MethodGet, "/drafts", nil)
	rec := httptest.NewRecorder()

	h.listDrafts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// пустой флот сериализуется как [], а не null
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListDrafts_InvalidIncludeExpired(t *testing.T) {
	h := newHandlerForDrafts(t, &mockDraftSvc{})
	req := httptest.NewRequest(http.MethodGet, "/drafts?includeExpired=banana", nil)
	rec := httptest.NewRecorder()

	h.listDrafts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid includeExpired parameter")
}

func TestListDrafts_InvalidLimit(t *testing.T) {
	h := newHandlerForDrafts(t, &mockDraftSvc{})
	req := httptest.NewRequest(http.MethodGet, "/drafts?limit=ten", nil)
	rec := httptest.NewRecorder()

	h.listDrafts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid limit parameter")
}

func TestListDrafts_ServiceError(t *testing.T) {
	svc := &mockDraftSvc{
		listFn: func(_ context.Context, _ models.ListDraftsFilter) ([]models.Draft, error) {
			return nil, errors.New("db unavailable")
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := httptest.NewRequest(http.MethodGet, "/drafts", nil)
	rec := httptest.NewRecorder()

	h.listDrafts(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error listing drafts")
}

// ─────────────────────────────────────────────
// deleteDraft
// ─────────────────────────────────────────────

func TestDeleteDraft_Success(t *testing.T) {
	called := false
	svc := &mockDraftSvc{
		deleteFn: func(_ context.Context, draftID int64) error {
			called = true
			assert.Equal(t, int64(7), draftID)
			return nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/drafts/7", nil), "id", "7")
	rec := httptest.NewRecorder()

	h.deleteDraft(rec, req)

	assert.True(t, called, "DeleteDraft should have been called")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteDraft_InvalidID(t *testing.T) {
	h := newHandlerForDrafts(t, &mockDraftSvc{})
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/drafts/x", nil), "id", "x")
	rec := httptest.NewRecorder()

	h.deleteDraft(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteDraft_NotFound(t *testing.T) {
	svc := &mockDraftSvc{
		deleteFn: func(_ context.Context, _ int64) error {
			return store.ErrDraftNotFound
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/drafts/999", nil), "id", "999")
	rec := httptest.NewRecorder()

	h.deleteDraft(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// completeDraft
// ─────────────────────────────────────────────

func TestCompleteDraft_SuccessWithNotes(t *testing.T) {
	called := false
	svc := &mockDraftSvc{
		completeFn: func(_ context.Context, draftID int64, notes string) error {
			called = true
			assert.Equal(t, int64(7), draftID)
			assert.Equal(t, "converted to transaction 4182", notes)
			return nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(
		httptest.NewRequest(http.MethodPost, "/drafts/7/complete",
			encodeBody(t, models.CompleteDraftRequest{Notes: "converted to transaction 4182"})),
		"id", "7")
	rec := httptest.NewRecorder()

	h.completeDraft(rec, req)

	assert.True(t, called, "CompleteDraft should have been called")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompleteDraft_EmptyBodyCompletesWithoutNotes(t *testing.T) {
	called := false
	svc := &mockDraftSvc{
		completeFn: func(_ context.Context, _ int64, notes string) error {
			called = true
			assert.Empty(t, notes)
			return nil
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(
		httptest.NewRequest(http.MethodPost, "/drafts/7/complete", strings.NewReader("")),
		"id", "7")
	rec := httptest.NewRecorder()

	h.completeDraft(rec, req)

	assert.True(t, called, "a bare POST should still complete the draft")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompleteDraft_InvalidJSON(t *testing.T) {
	h := newHandlerForDrafts(t, &mockDraftSvc{})
	req := withURLParam(
		httptest.NewRequest(http.MethodPost, "/drafts/7/complete", strings.NewReader(`{bad json}`)),
		"id", "7")
	rec := httptest.NewRecorder()

	h.completeDraft(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

func TestCompleteDraft_NotFound(t *testing.T) {
	svc := &mockDraftSvc{
		completeFn: func(_ context.Context, _ int64, _ string) error {
			return store.ErrDraftNotFound
		},
	}

	h := newHandlerForDrafts(t, svc)
	req := withURLParam(
		httptest.NewRequest(http.MethodPost, "/drafts/999/complete", strings.NewReader("")),
		"id", "999")
	rec := httptest.NewRecorder()

	h.completeDraft(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// Сквозные тесты: роутер + auth + настоящий сервис
// поверх gomock-репозитория
// ─────────────────────────────────────────────

const (
	e2eSignKey = "e2e-sign-key"
	e2eIssuer  = "cart-keeper"
)

// newDraftsE2ERouter wires the full middleware chain and the real service
// stack (validation wrapper over the core draft service) on top of a
// mocked repository. Only the storage boundary is faked.
func newDraftsE2ERouter(t *testing.T, ctrl *gomock.Controller) (http.Handler, *mock.MockDraftRepository) {
	t.Helper()

	repo := mock.NewMockDraftRepository(ctrl)
	log := logger.Nop()

	h := &Handler{
		logger: log,
		services: &service.Services{
			TokenService:   service.NewTokenService(config.App{TokenSignKey: e2eSignKey, TokenIssuer: e2eIssuer}, log),
			AppInfoService: &mockAppInfoSvc{},
			DraftService: service.NewDraftValidationService().Wrap(
				service.NewDraftService(repo, config.Drafts{TTL: time.Hour}, log)),
		},
	}

	return h.Init(), repo
}

func mintBearer(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(e2eIssuer, userID, time.Hour, e2eSignKey)
	require.NoError(t, err)
	return "Bearer " + token.SignedString
}

func TestDraftsE2E_SaveThenFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, repo := newDraftsE2ERouter(t, ctrl)

	var stored models.Draft
	repo.EXPECT().
		UpsertDraft(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, draft models.Draft) (models.Draft, error) {
			draft.DraftID = 101
			stored = draft
			return draft, nil
		})

	body := models.SaveDraftRequest{
		DraftKey:  "reg-7:42:sale_draft",
		DraftType: models.DraftTypeSale,
		DeviceID:  "reg-7",
		UserID:    42,
		Payload: models.DraftPayload{
			Items:    []models.LineItem{{SKU: "SKU-1", Name: "Mug", Quantity: 2, UnitCents: 500}},
			Customer: &models.Customer{ID: 9, Name: "Jordan Reyes"},
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/drafts", encodeBody(t, body))
	req.Header.Set("Authorization", mintBearer(t, 42))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved models.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&saved))
	assert.Equal(t, int64(101), saved.DraftID)
	assert.Equal(t, "reg-7:42:sale_draft", saved.DraftKey)
	// сервис денормализует сводку перед записью
	assert.Equal(t, 2, saved.ItemCount)
	assert.Equal(t, int64(1000), saved.TotalCents)
	assert.Equal(t, "Jordan Reyes", saved.CustomerName)
	require.NotNil(t, saved.ExpiresAt, "a configured TTL must stamp the expiry")

	repo.EXPECT().
		GetDraftByID(gomock.Any(), int64(101)).
		Return(stored, nil)

	req = httptest.NewRequest(http.MethodGet, "/drafts/101", nil)
	req.Header.Set("Authorization", mintBearer(t, 42))
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, saved.DraftID, fetched.DraftID)
	assert.Equal(t, saved.DraftKey, fetched.DraftKey)
}

func TestDraftsE2E_SaveForAnotherUserForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// репозиторий без EXPECT: запись не должна дойти до хранилища
	router, _ := newDraftsE2ERouter(t, ctrl)

	body := models.SaveDraftRequest{
		DraftKey:  "reg-7:43:sale_draft",
		DraftType: models.DraftTypeSale,
		DeviceID:  "reg-7",
		UserID:    43,
	}
	req := httptest.NewRequest(http.MethodPost, "/drafts", encodeBody(t, body))
	req.Header.Set("Authorization", mintBearer(t, 42))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDraftsE2E_MismatchedKeyRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newDraftsE2ERouter(t, ctrl)

	// ключ назван от имени другого устройства
	body := models.SaveDraftRequest{
		DraftKey:  "reg-9:42:sale_draft",
		DraftType: models.DraftTypeSale,
		DeviceID:  "reg-7",
		UserID:    42,
	}
	req := httptest.NewRequest(http.MethodPost, "/drafts", encodeBody(t, body))
	req.Header.Set("Authorization", mintBearer(t, 42))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftsE2E_GetUnknownDraftIs404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, repo := newDraftsE2ERouter(t, ctrl)

	repo.EXPECT().
		GetDraftByID(gomock.Any(), int64(999)).
		Return(models.Draft{}, store.ErrDraftNotFound)

	req := httptest.NewRequest(http.MethodGet, "/drafts/999", nil)
	req.Header.Set("Authorization", mintBearer(t, 42))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftsE2E_BatchSyncReplayAcknowledged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, repo := newDraftsE2ERouter(t, ctrl)

	savePayload, err := json.Marshal(models.SaveDraftRequest{
		DraftKey:  "reg-7:42:sale_draft",
		DraftType: models.DraftTypeSale,
		DeviceID:  "reg-7",
		UserID:    42,
		Payload: models.DraftPayload{
			Items: []models.LineItem{{SKU: "SKU-1", Name: "Mug", Quantity: 1, UnitCents: 500}},
		},
	})
	require.NoError(t, err)

	// первая операция уже в журнале, вторая применяется чисто
	repo.EXPECT().
		ApplySaveDraft(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Draft{}, store.ErrOperationAlreadyApplied)
	repo.EXPECT().
		ApplyDeleteDraft(gomock.Any(), gomock.Any(), "reg-7:42:sale_draft").
		Return(nil)

	body, err := json.Marshal(models.BatchSyncRequest{
		DeviceID: "reg-7",
		Operations: []models.PendingOperation{
			{ID: "op-1", Type: models.OpSaveDraft, DeviceID: "reg-7", Payload: savePayload},
			{ID: "op-2", Type: models.OpDeleteDraft, DeviceID: "reg-7", Payload: []byte(`{"draft_key":"reg-7:42:sale_draft"}`)},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/drafts/sync", bytes.NewReader(body))
	req.Header.Set("Authorization", mintBearer(t, 42))
	// заголовок целостности считается от сырых байт тела
	req.Header.Set("X-Content-Hash", utils.HashHex(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response models.BatchSyncResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Results, 2)

	assert.True(t, response.Results[0].Success, "replayed operation must be acknowledged, not retried")
	assert.Equal(t, "already applied", response.Results[0].Message)
	assert.True(t, response.Results[1].Success)
}

func TestDraftsE2E_TamperedBatchRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// репозиторий без EXPECT: испорченный батч не должен дойти до сервиса
	router, _ := newDraftsE2ERouter(t, ctrl)

	body, err := json.Marshal(models.BatchSyncRequest{
		DeviceID: "reg-7",
		Operations: []models.PendingOperation{
			{ID: "op-1", Type: models.OpSaveDraft, DeviceID: "reg-7", Payload: []byte(`{}`)},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/drafts/sync", bytes.NewReader(body))
	req.Header.Set("Authorization", mintBearer(t, 42))
	req.Header.Set("X-Content-Hash", utils.HashHex([]byte("other bytes")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Integrity check failed")
}
