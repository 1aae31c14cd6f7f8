package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PremPrakashCodes/inboxpilot/internal/application/apikey"
	"github.com/PremPrakashCodes/inboxpilot/internal/application/otp"
	"github.com/PremPrakashCodes/inboxpilot/internal/application/user"
	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/pkg/validate"
)

// AuthHandler drives the passwordless flow: register, then login (OTP out),
// then verify (OTP in, default API key out).
type AuthHandler struct {
	users user.Service
	otps  otp.Service
	keys  apikey.Service
}

func NewAuthHandler(users user.Service, otps otp.Service, keys apikey.Service) *AuthHandler {
	return &AuthHandler{users: users, otps: otps, keys: keys}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			writeError(w, http.StatusConflict, "User already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{
		Message: "User registered successfully",
		Email:   u.Email,
		Name:    u.Name,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.users.Find(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found. Please register first.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if err := h.otps.CreateAndSend(r.Context(), req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send email. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Message: "OTP sent to your email", Email: req.Email})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.otps.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if !result.Valid {
		writeError(w, http.StatusUnauthorized, result.Error)
		return
	}

	if err := h.keys.CreateDefault(r.Context(), req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send API key email. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Message: "API key sent to your email", Email: req.Email})
}
