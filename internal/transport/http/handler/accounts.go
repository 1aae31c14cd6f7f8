package handler

import (
	"errors"
	"net/http"

	"github.com/PremPrakashCodes/inboxpilot/internal/application/account"
	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/transport/http/middleware"
)

// AccountHandler handles the Gmail connect flow and connected-account
// listing.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accounts, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if accounts == nil {
		accounts = []domain.ConnectedAccount{}
	}
	writeJSON(w, http.StatusOK, AccountListEnvelope{Accounts: accounts})
}

// ConnectGmail hands the caller a consent URL carrying their user id in the
// OAuth state parameter.
func (h *AccountHandler) ConnectGmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": h.svc.ConsentURL(userID)})
}

// GmailCallback is the public OAuth redirect target. The user id is
// recovered from the state parameter, not from a bearer token.
func (h *AccountHandler) GmailCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		writeError(w, http.StatusBadRequest, "Missing OAuth parameters")
		return
	}

	userID, gmailEmail, err := h.svc.ExchangeAndSave(r.Context(), code, state)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, "Invalid state")
			return
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusBadRequest, "Failed to connect Gmail")
			return
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "Gmail connected successfully",
		"userId":     userID,
		"gmailEmail": gmailEmail,
	})
}
