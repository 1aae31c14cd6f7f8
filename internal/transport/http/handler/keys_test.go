package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PremPrakashCodes/inboxpilot/internal/application/apikey"
	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockKeySvc struct{ mock.Mock }

func (m *mockKeySvc) CreateDefault(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockKeySvc) Create(ctx context.Context, userID, name string, expiresIn domain.ExpiresIn) (*domain.CreatedKey, error) {
	args := m.Called(ctx, userID, name, expiresIn)
	if k, _ := args.Get(0).(*domain.CreatedKey); k != nil {
		return k, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockKeySvc) List(ctx context.Context, userID string) ([]domain.KeySummary, error) {
	args := m.Called(ctx, userID)
	if keys, _ := args.Get(0).([]domain.KeySummary); keys != nil {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockKeySvc) Update(ctx context.Context, userID, keyID string, fields apikey.UpdateFields) (string, error) {
	args := m.Called(ctx, userID, keyID, fields)
	return args.String(0), args.Error(1)
}

func (m *mockKeySvc) Delete(ctx context.Context, userID, keyID string) (string, error) {
	args := m.Called(ctx, userID, keyID)
	return args.String(0), args.Error(1)
}

func (m *mockKeySvc) ResolveSessionUser(ctx context.Context, tok string) (string, error) {
	args := m.Called(ctx, tok)
	return args.String(0), args.Error(1)
}

// --- helpers ---

// staticResolver maps any presented token to a fixed user id.
type staticResolver struct{ userID string }

func (s staticResolver) ResolveSessionUser(context.Context, string) (string, error) {
	return s.userID, nil
}

// serveAuthed wraps the handler with middleware.Auth before serving, so the
// user id lands in the request context the same way it does in production.
func serveAuthed(userID string, h http.Handler, w http.ResponseWriter, r *http.Request) {
	r.Header.Set("Authorization", "Bearer test-token")
	middleware.Auth(staticResolver{userID: userID})(h).ServeHTTP(w, r)
}

const testKeyID = "3f2d9c0a-5b1e-4d7f-8a6c-2e9b0d4f7a1c"

// --- Create tests ---

func TestCreateKey_NoContext_Unauthorized(t *testing.T) {
	h := NewKeyHandler(&mockKeySvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	h.Create(rr, r) // called directly, no user id in context
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateKey_InvalidBody(t *testing.T) {
	h := NewKeyHandler(&mockKeySvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Create), rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateKey_ValidationFailure(t *testing.T) {
	h := NewKeyHandler(&mockKeySvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewBufferString(`{"expiresIn":"7d"}`)) // missing name
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Create), rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateKey_UnknownExpiryTag(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Create", mock.Anything, "u1", "CI", domain.ExpiresIn{Tag: "2w"}).
		Return(nil, domain.ErrBadRequest)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewBufferString(`{"name":"CI","expiresIn":"2w"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Create), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertExpectations(t)
}

func TestCreateKey_HappyPath_TokenAbsentFromResponse(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Create", mock.Anything, "u1", "CI", domain.ExpiresIn{Tag: "7d"}).
		Return(&domain.CreatedKey{KeyID: testKeyID, Name: "CI", ExpiresAt: "2024-06-08T12:00:00Z"}, nil)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewBufferString(`{"name":"CI","expiresIn":"7d"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Create), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, testKeyID, resp["keyId"])
	_, hasToken := resp["token"]
	assert.False(t, hasToken, "raw token must never appear in a response body")
	svc.AssertExpectations(t)
}

func TestCreateKey_RawDayCount(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Create", mock.Anything, "u1", "CI", domain.ExpiresIn{Days: 14}).
		Return(&domain.CreatedKey{KeyID: testKeyID, Name: "CI"}, nil)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/v1/keys", bytes.NewBufferString(`{"name":"CI","expiresIn":14}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Create), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

// --- List tests ---

func TestListKeys_HappyPath(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("List", mock.Anything, "u1").Return([]domain.KeySummary{
		{KeyID: testKeyID, Name: "CI", Prefix: "aaaabbbb...dddd", ExpiresAt: "never"},
	}, nil)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/v1/keys", nil)
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp KeyListEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Keys, 1)
	assert.Equal(t, "aaaabbbb...dddd", resp.Keys[0].Prefix)
	svc.AssertExpectations(t)
}

func TestListKeys_Empty(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("List", mock.Anything, "u1").Return([]domain.KeySummary{}, nil)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/v1/keys", nil)
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"keys":[]`)
}

// --- Update tests ---

func TestUpdateKey_MalformedKeyID(t *testing.T) {
	h := NewKeyHandler(&mockKeySvc{})
	r := httptest.NewRequest(http.MethodPatch, "/v1/keys", bytes.NewBufferString(`{"keyId":"not-a-uuid","name":"X"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Update), rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateKey_NotFound(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Update", mock.Anything, "u1", testKeyID, mock.Anything).Return("", domain.ErrNotFound)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodPatch, "/v1/keys", bytes.NewBufferString(`{"keyId":"`+testKeyID+`","name":"X"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Update), rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "API key not found")
}

func TestUpdateKey_NoFields(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Update", mock.Anything, "u1", testKeyID, mock.Anything).Return("", domain.ErrNoFields)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodPatch, "/v1/keys", bytes.NewBufferString(`{"keyId":"`+testKeyID+`"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Update), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "No fields to update")
}

func TestUpdateKey_HappyPath(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Update", mock.Anything, "u1", testKeyID, mock.MatchedBy(func(f apikey.UpdateFields) bool {
		return f.Name != nil && *f.Name == "Renamed" && f.ExpiresIn == nil
	})).Return(testKeyID, nil)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodPatch, "/v1/keys", bytes.NewBufferString(`{"keyId":"`+testKeyID+`","name":"Renamed"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Update), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp KeyEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, testKeyID, resp.KeyID)
	svc.AssertExpectations(t)
}

// --- Delete tests ---

func TestDeleteKey_NotFound(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Delete", mock.Anything, "u1", testKeyID).Return("", domain.ErrNotFound)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodDelete, "/v1/keys", bytes.NewBufferString(`{"keyId":"`+testKeyID+`"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Delete), rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteKey_HappyPath(t *testing.T) {
	svc := &mockKeySvc{}
	svc.On("Delete", mock.Anything, "u1", testKeyID).Return(testKeyID, nil)
	h := NewKeyHandler(svc)

	r := httptest.NewRequest(http.MethodDelete, "/v1/keys", bytes.NewBufferString(`{"keyId":"`+testKeyID+`"}`))
	rr := httptest.NewRecorder()
	serveAuthed("u1", http.HandlerFunc(h.Delete), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp KeyEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, testKeyID, resp.KeyID)
	svc.AssertExpectations(t)
}
