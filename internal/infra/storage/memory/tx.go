package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type txKey struct{}

// TxManager serializes DoSerializable calls on one Store and restores the
// store's previous state when fn returns an error.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	bookings map[uuid.UUID]*domain.Booking
	balances map[uuid.UUID]*domain.UserBalance
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		bookings: make(map[uuid.UUID]*domain.Booking, len(s.bookings)),
		balances: make(map[uuid.UUID]*domain.UserBalance, len(s.balances)),
	}
	for id, b := range s.bookings {
		c := *b
		snap.bookings[id] = &c
	}
	for id, b := range s.balances {
		c := *b
		snap.balances[id] = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snap.bookings
	s.balances = snap.balances
}
