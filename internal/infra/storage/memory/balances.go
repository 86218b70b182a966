package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

func (s *Store) GetUser(ctx context.Context, userID uuid.UUID) (*domain.UserBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.balances[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *b
	return &out, nil
}

func (s *Store) AdjustBalance(ctx context.Context, userID uuid.UUID, field domain.BalanceField, delta int, now time.Time) (*domain.UserBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBalance, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.balances[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if delta < 0 && b.ExpiredAt(field, now) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBalanceExpired, field)
	}
	next := b.Get(field) + delta
	if next < 0 {
		return nil, fmt.Errorf("%w: %s=%d", domain.ErrBalanceTooLow, field, b.Get(field))
	}

	b.Set(field, next)
	b.UpdatedAt = s.clock()

	out := *b
	return &out, nil
}

func (s *Store) AssignPackage(ctx context.Context, userID uuid.UUID, field domain.BalanceField, amount int, validUntil *time.Time) (*domain.UserBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBalance, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.balances[userID]
	if !ok {
		b = &domain.UserBalance{UserID: userID}
		s.balances[userID] = b
	}

	b.Set(field, b.Get(field)+amount)
	if validUntil != nil {
		v := *validUntil
		switch field {
		case domain.BalanceTokens:
			b.TokenValidUntil = &v
		case domain.BalanceDP20:
			b.DP20Expiry = &v
		}
	}
	b.UpdatedAt = s.clock()

	out := *b
	return &out, nil
}
