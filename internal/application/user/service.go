package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
)

// Store is the persistence surface for registered users.
type Store interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service interface {
	// Register creates a user. Registering an existing email is a conflict;
	// the identity is immutable once created.
	Register(ctx context.Context, name, email string) (*domain.User, error)
	Find(ctx context.Context, email string) (*domain.User, error)
}

type service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) Register(ctx context.Context, name, email string) (*domain.User, error) {
	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s already exists: %w", email, domain.ErrConflict)
	}

	now := s.now().UTC().Format(time.RFC3339)
	u := &domain.User{
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Find(ctx context.Context, email string) (*domain.User, error) {
	return s.store.GetByEmail(ctx, email)
}
