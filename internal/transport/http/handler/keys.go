package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PremPrakashCodes/inboxpilot/internal/application/apikey"
	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/pkg/validate"
	"github.com/PremPrakashCodes/inboxpilot/internal/transport/http/middleware"
)

// KeyHandler handles API-key management. All routes run behind the auth
// middleware; the caller's identity comes from the request context only.
type KeyHandler struct {
	svc apikey.Service
}

func NewKeyHandler(svc apikey.Service) *KeyHandler {
	return &KeyHandler{svc: svc}
}

func (h *KeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.Create(r.Context(), userID, req.Name, req.ExpiresIn)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to send API key email. Please try again.")
		return
	}
	writeJSON(w, http.StatusCreated, KeyEnvelope{
		Message:   "API key created and sent to your email",
		KeyID:     created.KeyID,
		Name:      created.Name,
		ExpiresAt: created.ExpiresAt,
	})
}

func (h *KeyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	keys, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, KeyListEnvelope{Keys: keys})
}

func (h *KeyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	keyID, err := h.svc.Update(r.Context(), userID, req.KeyID, apikey.UpdateFields{
		Name:      req.Name,
		ExpiresIn: req.ExpiresIn,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "API key not found")
		case errors.Is(err, domain.ErrNoFields):
			writeError(w, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}
	writeJSON(w, http.StatusOK, KeyEnvelope{Message: "API key updated", KeyID: keyID})
}

func (h *KeyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.DeleteKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	keyID, err := h.svc.Delete(r.Context(), userID, req.KeyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "API key not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, KeyEnvelope{Message: "API key deleted", KeyID: keyID})
}
