package account

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/infrastructure/google"
	"github.com/PremPrakashCodes/inboxpilot/internal/pkg/id"
)

// Store is the persistence surface for connected accounts.
type Store interface {
	Put(ctx context.Context, a *domain.ConnectedAccount) error
	Get(ctx context.Context, userID, sk string) (*domain.ConnectedAccount, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ConnectedAccount, error)
}

// OAuthProvider abstracts the Google consent/exchange flow for testing.
type OAuthProvider interface {
	ConsentURL(state string) string
	Exchange(ctx context.Context, code string) (*google.Tokens, *google.Profile, error)
}

type Service interface {
	// ConsentURL builds the Gmail consent URL for the authenticated user.
	// The user id rides through the OAuth round-trip in the state parameter.
	ConsentURL(userID string) string
	// ExchangeAndSave completes the callback: trades the code for tokens,
	// identifies the mailbox, and upserts the connected-account record.
	ExchangeAndSave(ctx context.Context, code, state string) (userID, gmailEmail string, err error)
	// List returns the user's connected mailboxes. Token material never
	// leaves the store through this path.
	List(ctx context.Context, userID string) ([]domain.ConnectedAccount, error)
}

type service struct {
	store Store
	oauth OAuthProvider
	now   func() time.Time
}

func NewService(store Store, oauth OAuthProvider) Service {
	return &service{store: store, oauth: oauth, now: time.Now}
}

// oauthState is the payload carried through the consent round-trip.
type oauthState struct {
	UserID string `json:"userId"`
}

func (s *service) ConsentURL(userID string) string {
	raw, _ := json.Marshal(oauthState{UserID: userID})
	return s.oauth.ConsentURL(base64.RawURLEncoding.EncodeToString(raw))
}

func (s *service) ExchangeAndSave(ctx context.Context, code, state string) (string, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return "", "", fmt.Errorf("invalid state: %w", domain.ErrBadRequest)
	}
	var st oauthState
	if err := json.Unmarshal(raw, &st); err != nil || st.UserID == "" {
		return "", "", fmt.Errorf("invalid state: %w", domain.ErrBadRequest)
	}

	tokens, profile, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", "", err
	}

	sk := domain.GoogleAccountPrefix + profile.Email
	now := s.now().UTC().Format(time.RFC3339)

	// Re-linking the same mailbox keeps its identity; only the token
	// material and profile fields refresh.
	accountID, createdAt := id.New(), now
	if existing, err := s.store.Get(ctx, st.UserID, sk); err == nil {
		accountID, createdAt = existing.AccountID, existing.CreatedAt
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", "", err
	}

	acct := &domain.ConnectedAccount{
		UserID:            st.UserID,
		SK:                sk,
		AccountID:         accountID,
		Provider:          "google",
		ProviderAccountID: profile.Email,
		Name:              profile.Name,
		Picture:           profile.Picture,
		AccessToken:       tokens.AccessToken,
		RefreshToken:      tokens.RefreshToken,
		TokenExpiry:       tokens.Expiry,
		Scope:             tokens.Scope,
		CreatedAt:         createdAt,
		UpdatedAt:         now,
	}
	if err := s.store.Put(ctx, acct); err != nil {
		return "", "", err
	}
	return st.UserID, profile.Email, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.ConnectedAccount, error) {
	return s.store.ListByUser(ctx, userID)
}
