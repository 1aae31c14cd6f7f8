package account

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/infrastructure/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, a *domain.ConnectedAccount) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockStore) Get(ctx context.Context, userID, sk string) (*domain.ConnectedAccount, error) {
	args := m.Called(ctx, userID, sk)
	if a, _ := args.Get(0).(*domain.ConnectedAccount); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) ListByUser(ctx context.Context, userID string) ([]domain.ConnectedAccount, error) {
	args := m.Called(ctx, userID)
	if accts, _ := args.Get(0).([]domain.ConnectedAccount); accts != nil {
		return accts, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOAuth struct{ mock.Mock }

func (m *mockOAuth) ConsentURL(state string) string {
	return m.Called(state).String(0)
}
func (m *mockOAuth) Exchange(ctx context.Context, code string) (*google.Tokens, *google.Profile, error) {
	args := m.Called(ctx, code)
	tokens, _ := args.Get(0).(*google.Tokens)
	profile, _ := args.Get(1).(*google.Profile)
	return tokens, profile, args.Error(2)
}

func encodeState(t *testing.T, userID string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(`{"userId":"` + userID + `"}`))
}

func TestConsentURL_EncodesUserIDInState(t *testing.T) {
	oauth := &mockOAuth{}
	oauth.On("ConsentURL", encodeState(t, "u1")).Return("https://accounts.google.com/consent?state=x")

	svc := NewService(&mockStore{}, oauth)
	url := svc.ConsentURL("u1")

	assert.Equal(t, "https://accounts.google.com/consent?state=x", url)
	oauth.AssertExpectations(t)
}

func TestExchangeAndSave_NewMailbox(t *testing.T) {
	st := &mockStore{}
	oauth := &mockOAuth{}
	oauth.On("Exchange", mock.Anything, "code-1").Return(
		&google.Tokens{AccessToken: "at", RefreshToken: "rt", Expiry: 1717250000, Scope: "gmail"},
		&google.Profile{Email: "a@gmail.com", Name: "Alice", Picture: "pic"},
		nil,
	)
	st.On("Get", mock.Anything, "u1", "google#a@gmail.com").Return(nil, domain.ErrNotFound)

	var saved *domain.ConnectedAccount
	st.On("Put", mock.Anything, mock.AnythingOfType("*domain.ConnectedAccount")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.ConnectedAccount) }).
		Return(nil)

	svc := NewService(st, oauth)
	userID, email, err := svc.ExchangeAndSave(context.Background(), "code-1", encodeState(t, "u1"))

	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "a@gmail.com", email)
	require.NotNil(t, saved)
	assert.Equal(t, "google#a@gmail.com", saved.SK)
	assert.Equal(t, "google", saved.Provider)
	assert.Equal(t, "rt", saved.RefreshToken)
	assert.NotEmpty(t, saved.AccountID)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
}

func TestExchangeAndSave_RelinkKeepsIdentity(t *testing.T) {
	st := &mockStore{}
	oauth := &mockOAuth{}
	oauth.On("Exchange", mock.Anything, "code-2").Return(
		&google.Tokens{AccessToken: "new-at", RefreshToken: "new-rt"},
		&google.Profile{Email: "a@gmail.com"},
		nil,
	)
	st.On("Get", mock.Anything, "u1", "google#a@gmail.com").Return(&domain.ConnectedAccount{
		AccountID: "acct-original",
		CreatedAt: "2023-01-01T00:00:00Z",
	}, nil)

	var saved *domain.ConnectedAccount
	st.On("Put", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.ConnectedAccount) }).
		Return(nil)

	svc := NewService(st, oauth)
	_, _, err := svc.ExchangeAndSave(context.Background(), "code-2", encodeState(t, "u1"))

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "acct-original", saved.AccountID)
	assert.Equal(t, "2023-01-01T00:00:00Z", saved.CreatedAt)
	assert.Equal(t, "new-rt", saved.RefreshToken)
	assert.NotEqual(t, saved.CreatedAt, saved.UpdatedAt)
}

func TestExchangeAndSave_BadState(t *testing.T) {
	svc := NewService(&mockStore{}, &mockOAuth{})

	_, _, err := svc.ExchangeAndSave(context.Background(), "code", "%%%not-base64%%%")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	empty := base64.RawURLEncoding.EncodeToString([]byte(`{}`))
	_, _, err = svc.ExchangeAndSave(context.Background(), "code", empty)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestExchangeAndSave_ExchangeFailurePropagates(t *testing.T) {
	oauth := &mockOAuth{}
	oauth.On("Exchange", mock.Anything, "code").Return(nil, nil, errors.New("invalid_grant"))

	st := &mockStore{}
	svc := NewService(st, oauth)
	_, _, err := svc.ExchangeAndSave(context.Background(), "code", encodeState(t, "u1"))

	require.Error(t, err)
	st.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestList_PassesThrough(t *testing.T) {
	st := &mockStore{}
	st.On("ListByUser", mock.Anything, "u1").Return([]domain.ConnectedAccount{
		{SK: "google#a@gmail.com", Provider: "google"},
	}, nil)

	svc := NewService(st, &mockOAuth{})
	accts, err := svc.List(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, accts, 1)
	assert.Equal(t, "google", accts[0].Provider)
}
