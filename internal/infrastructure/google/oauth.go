package google

import (
	"context"
	"fmt"

	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// gmailScopes is the consent surface requested for a connected mailbox.
var gmailScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.modify",
}

// Tokens are the opaque credentials returned by the exchange. They are
// stored as-is and never interpreted by this service.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       int64 // epoch seconds, 0 if Google returned no expiry
	TokenType    string
	Scope        string
}

// Profile is the identity Google reports for the connected mailbox.
type Profile struct {
	Email   string
	Name    string
	Picture string
}

// OAuth wraps the Google consent/exchange flow. The rest of the system
// treats Google as an opaque identity provider that hands back a mailbox
// address and token material.
type OAuth struct {
	conf *oauth2.Config
}

func NewOAuth(clientID, clientSecret, redirectURL string) *OAuth {
	return &OAuth{conf: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       gmailScopes,
		Endpoint:     googleoauth.Endpoint,
	}}
}

// ConsentURL builds the offline-access consent URL carrying the caller's
// state parameter.
func (o *OAuth) ConsentURL(state string) string {
	return o.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the authorization code for tokens and fetches the
// userinfo profile. Returns domain.ErrUnauthorized-wrapped errors so the
// handler maps OAuth failures to a client-visible 400/401, not a 500.
func (o *OAuth) Exchange(ctx context.Context, code string) (*Tokens, *Profile, error) {
	tok, err := o.conf.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("google code exchange failed: %w", domain.ErrUnauthorized)
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(o.conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, nil, fmt.Errorf("build oauth2 service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("fetch google userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, nil, fmt.Errorf("could not retrieve email from google: %w", domain.ErrUnauthorized)
	}

	var expiry int64
	if !tok.Expiry.IsZero() {
		expiry = tok.Expiry.Unix()
	}
	scope, _ := tok.Extra("scope").(string)
	return &Tokens{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			Expiry:       expiry,
			TokenType:    tok.TokenType,
			Scope:        scope,
		}, &Profile{
			Email:   info.Email,
			Name:    info.Name,
			Picture: info.Picture,
		}, nil
}
