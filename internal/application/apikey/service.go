package apikey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PremPrakashCodes/inboxpilot/internal/config"
	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/infrastructure/smtp"
	pkgtoken "github.com/PremPrakashCodes/inboxpilot/internal/pkg/token"
)

// DefaultKeyName is the name of the key minted on first verified login.
const DefaultKeyName = "Default"

// Store is the persistence surface for the dual-record key layout.
type Store interface {
	PutKey(ctx context.Context, k *domain.APIKey) error
	PutRef(ctx context.Context, ref *domain.KeyRef) error
	GetKey(ctx context.Context, tok string) (*domain.APIKey, error)
	GetRef(ctx context.Context, keyID string) (*domain.KeyRef, error)
	QueryByUser(ctx context.Context, userID string) ([]domain.APIKey, error)
	UpdateKey(ctx context.Context, tok string, updates map[string]interface{}) error
	DeleteKey(ctx context.Context, tok string) error
	DeleteRef(ctx context.Context, keyID string) error
}

// UpdateFields carries the optional attributes of a key update. Nil means
// "leave unchanged"; both nil is the distinguished no-op.
type UpdateFields struct {
	Name      *string
	ExpiresIn *domain.ExpiresIn
}

type Service interface {
	// CreateDefault mints the "Default" key after first verified login and
	// mails the token. TTL is fixed to the configured API-key lifetime.
	CreateDefault(ctx context.Context, email string) error
	// Create mints a named key. The raw token is only ever delivered by
	// email; the returned result deliberately omits it.
	Create(ctx context.Context, userID, name string, expiresIn domain.ExpiresIn) (*domain.CreatedKey, error)
	// List returns the caller's live keys: keyref rows and expired keys are
	// filtered out, and tokens appear only as a recognisable prefix.
	List(ctx context.Context, userID string) ([]domain.KeySummary, error)
	// Update renames and/or re-expires a key addressed by its public id.
	// Foreign or missing keys yield ErrNotFound; an empty field set yields
	// ErrNoFields. The keyref record is never touched.
	Update(ctx context.Context, userID, keyID string, fields UpdateFields) (string, error)
	// Delete removes both the primary and the keyref record, returning the
	// keyId as confirmation.
	Delete(ctx context.Context, userID, keyID string) (string, error)
	// ResolveSessionUser maps a presented bearer token to its owning user.
	// A ttl of 0 marks a never-expiring key and is not compared to the
	// clock. Unknown and expired tokens yield ErrUnauthorized.
	ResolveSessionUser(ctx context.Context, tok string) (string, error)
}

// Deps wires the service. Now is optional and defaults to time.Now.
type Deps struct {
	Store  Store
	Mailer smtp.Mailer
	From   string
	Creds  config.Credentials
	Now    func() time.Time
}

type service struct {
	store  Store
	mailer smtp.Mailer
	from   string
	creds  config.Credentials
	now    func() time.Time
}

func NewService(d Deps) Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:  d.Store,
		mailer: d.Mailer,
		from:   d.From,
		creds:  d.Creds,
		now:    now,
	}
}

// keyExpiry is the resolved lifetime of a key: the absolute TTL written to
// the store and its display form.
type keyExpiry struct {
	TTL       int64
	ExpiresAt string
}

// resolveExpiry is the single place key lifetimes are computed, on creation
// and update alike. Symbolic tags come from the configured vocabulary; a raw
// integer is a day count. Unknown tags are rejected before the store is
// touched.
func (s *service) resolveExpiry(expiresIn domain.ExpiresIn) (keyExpiry, error) {
	var seconds int64
	if expiresIn.IsDays() {
		seconds = int64(expiresIn.Days) * 24 * 60 * 60
	} else {
		var ok bool
		seconds, ok = s.creds.ExpiryOptions[expiresIn.Tag]
		if !ok {
			return keyExpiry{}, fmt.Errorf("unknown expiry option %q: %w", expiresIn.Tag, domain.ErrBadRequest)
		}
	}
	return s.expiryFromSeconds(seconds), nil
}

func (s *service) expiryFromSeconds(seconds int64) keyExpiry {
	if seconds == 0 {
		return keyExpiry{TTL: domain.TTLNever, ExpiresAt: "never"}
	}
	now := s.now().UTC()
	return keyExpiry{
		TTL:       now.Unix() + seconds,
		ExpiresAt: now.Add(time.Duration(seconds) * time.Second).Format(time.RFC3339),
	}
}

func (s *service) CreateDefault(ctx context.Context, email string) error {
	exp := s.expiryFromSeconds(s.creds.APIKeyTTLSeconds)
	_, err := s.mint(ctx, email, DefaultKeyName, exp, "Your InboxPilot API Key")
	return err
}

func (s *service) Create(ctx context.Context, userID, name string, expiresIn domain.ExpiresIn) (*domain.CreatedKey, error) {
	exp, err := s.resolveExpiry(expiresIn)
	if err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("Your InboxPilot API Key — %s", name)
	return s.mint(ctx, userID, name, exp, subject)
}

// mint writes the primary record, then the keyref, then mails the token.
// The two writes are not atomic: a crash in between leaves an orphan primary
// that keyId-based operations cannot reach. Resolution guards the inverse
// case (keyref without primary).
func (s *service) mint(ctx context.Context, userID, name string, exp keyExpiry, subject string) (*domain.CreatedKey, error) {
	tok := pkgtoken.New()
	keyID := pkgtoken.NewKeyID()
	createdAt := s.now().UTC().Format(time.RFC3339)

	if err := s.store.PutKey(ctx, &domain.APIKey{
		Token:     tok,
		UserID:    userID,
		KeyID:     keyID,
		Name:      name,
		CreatedAt: createdAt,
		ExpiresAt: exp.ExpiresAt,
		TTL:       exp.TTL,
	}); err != nil {
		return nil, err
	}
	if err := s.store.PutRef(ctx, &domain.KeyRef{
		PK:     domain.KeyRefPrefix + keyID,
		Token:  tok,
		UserID: userID,
	}); err != nil {
		return nil, err
	}

	if err := s.mailer.Send(s.from, []string{userID}, subject, smtp.APIKeyEmail(tok, name)); err != nil {
		return nil, err
	}
	return &domain.CreatedKey{KeyID: keyID, Name: name, ExpiresAt: exp.ExpiresAt}, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.KeySummary, error) {
	rows, err := s.store.QueryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().Unix()
	summaries := make([]domain.KeySummary, 0, len(rows))
	for _, k := range rows {
		if strings.HasPrefix(k.Token, domain.KeyRefPrefix) {
			continue
		}
		if k.TTL != domain.TTLNever && k.TTL <= now {
			continue
		}
		expiresAt := k.ExpiresAt
		if expiresAt == "" {
			expiresAt = "never"
		}
		summaries = append(summaries, domain.KeySummary{
			KeyID:     k.KeyID,
			Name:      k.Name,
			Prefix:    pkgtoken.Prefix(k.Token),
			CreatedAt: k.CreatedAt,
			ExpiresAt: expiresAt,
		})
	}
	return summaries, nil
}

// resolveOwned maps a keyId to its keyref, enforcing ownership. A foreign
// keyref is reported exactly like a missing one so callers cannot probe
// which keyIds exist. A keyref whose primary record is gone (orphaned by a
// non-atomic delete) is likewise not-found.
func (s *service) resolveOwned(ctx context.Context, userID, keyID string) (*domain.KeyRef, error) {
	ref, err := s.store.GetRef(ctx, keyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("key %s: %w", keyID, domain.ErrNotFound)
		}
		return nil, err
	}
	if ref.UserID != userID {
		return nil, fmt.Errorf("key %s: %w", keyID, domain.ErrNotFound)
	}
	if _, err := s.store.GetKey(ctx, ref.Token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("key %s: %w", keyID, domain.ErrNotFound)
		}
		return nil, err
	}
	return ref, nil
}

func (s *service) Update(ctx context.Context, userID, keyID string, fields UpdateFields) (string, error) {
	ref, err := s.resolveOwned(ctx, userID, keyID)
	if err != nil {
		return "", err
	}

	updates := map[string]interface{}{}
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.ExpiresIn != nil {
		exp, err := s.resolveExpiry(*fields.ExpiresIn)
		if err != nil {
			return "", err
		}
		updates["expires_at"] = exp.ExpiresAt
		updates["ttl"] = exp.TTL
	}
	if len(updates) == 0 {
		return "", domain.ErrNoFields
	}

	if err := s.store.UpdateKey(ctx, ref.Token, updates); err != nil {
		return "", err
	}
	return keyID, nil
}

func (s *service) Delete(ctx context.Context, userID, keyID string) (string, error) {
	ref, err := s.resolveOwned(ctx, userID, keyID)
	if err != nil {
		return "", err
	}
	if err := s.store.DeleteKey(ctx, ref.Token); err != nil {
		return "", err
	}
	if err := s.store.DeleteRef(ctx, keyID); err != nil {
		return "", err
	}
	return keyID, nil
}

func (s *service) ResolveSessionUser(ctx context.Context, tok string) (string, error) {
	k, err := s.store.GetKey(ctx, tok)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("unknown session token: %w", domain.ErrUnauthorized)
		}
		return "", err
	}
	if k.TTL != domain.TTLNever && k.TTL < s.now().Unix() {
		return "", fmt.Errorf("session token expired: %w", domain.ErrUnauthorized)
	}
	return k.UserID, nil
}
