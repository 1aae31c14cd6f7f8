package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
	"github.com/PremPrakashCodes/inboxpilot/internal/infrastructure/smtp"
)

// InvalidOTPMessage is the fixed, non-revealing failure message. Missing,
// mismatched and expired codes are deliberately indistinguishable.
const InvalidOTPMessage = "Invalid or expired OTP"

// Store is the persistence surface the OTP subsystem needs.
type Store interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	Get(ctx context.Context, email string) (*domain.OTPRecord, error)
	Delete(ctx context.Context, email string) error
}

type Service interface {
	// CreateAndSend issues a fresh 6-digit code for the email, overwriting
	// any prior live code, and mails it. A mail failure fails the call even
	// though the record is already persisted; a retry simply overwrites.
	CreateAndSend(ctx context.Context, email string) error
	// Verify checks a candidate code. On success the record is consumed;
	// on any failure it is left untouched so the user can retry within TTL.
	Verify(ctx context.Context, email, candidate string) (domain.VerifyResult, error)
}

// Deps wires the service. Now is optional and defaults to time.Now; tests
// inject a fixed clock to pin expiry boundaries.
type Deps struct {
	Store      Store
	Mailer     smtp.Mailer
	From       string
	TTLSeconds int64
	Now        func() time.Time
}

type service struct {
	store  Store
	mailer smtp.Mailer
	from   string
	ttl    int64
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
		ttl:    d.TTLSeconds,
		now:    now,
	}
}

func (s *service) CreateAndSend(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	now := s.now().UTC()
	rec := &domain.OTPRecord{
		PK:        domain.OTPKeyPrefix + email,
		OTP:       code,
		CreatedAt: now.Format(time.RFC3339),
		TTL:       now.Unix() + s.ttl,
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return err
	}

	subject := fmt.Sprintf("%s — Your InboxPilot verification code", code)
	return s.mailer.Send(s.from, []string{email}, subject, smtp.OTPEmail(code))
}

func (s *service) Verify(ctx context.Context, email, candidate string) (domain.VerifyResult, error) {
	rec, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return invalid(), nil
		}
		return domain.VerifyResult{}, err
	}
	if rec.OTP != candidate {
		return invalid(), nil
	}
	// Strict less-than: a verification at the exact expiry second is valid.
	if rec.TTL < s.now().Unix() {
		return invalid(), nil
	}
	if err := s.store.Delete(ctx, email); err != nil {
		return domain.VerifyResult{}, err
	}
	return domain.VerifyResult{Valid: true}, nil
}

func invalid() domain.VerifyResult {
	return domain.VerifyResult{Valid: false, Error: InvalidOTPMessage}
}

// generateCode draws a 6-digit code uniformly from [100000, 999999).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(899999))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
