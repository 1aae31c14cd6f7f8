package handler

import (
	"encoding/json"
	"net/http"

	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps register/login/verify responses.
type AuthEnvelope struct {
	Message string `json:"message,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Error   string `json:"error,omitempty"`
}

// KeyEnvelope wraps key-creation and key-mutation responses. The raw token
// never appears here — it is delivered by email only.
type KeyEnvelope struct {
	Message   string `json:"message,omitempty"`
	KeyID     string `json:"keyId,omitempty"`
	Name      string `json:"name,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	Error     string `json:"error,omitempty"`
}

// KeyListEnvelope wraps key listings.
type KeyListEnvelope struct {
	Keys []domain.KeySummary `json:"keys"`
}

// AccountListEnvelope wraps connected-account listings.
type AccountListEnvelope struct {
	Accounts []domain.ConnectedAccount `json:"accounts"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
