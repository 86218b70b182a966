// Package memory is an in-process implementation of the booking, balance and room stores.
// It enforces the same overlap and non-negative balance rules as the Postgres schema and
// ships a transaction manager that rolls the whole store back when the function fails.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	bookings map[uuid.UUID]*domain.Booking
	balances map[uuid.UUID]*domain.UserBalance
	rooms    map[int64]*domain.Room
	clock    func() time.Time
}

var (
	_ domain.BookingStore     = (*Store)(nil)
	_ domain.UserBalanceStore = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		bookings: make(map[uuid.UUID]*domain.Booking),
		balances: make(map[uuid.UUID]*domain.UserBalance),
		rooms:    make(map[int64]*domain.Room),
		clock:    time.Now,
	}
}

// WithClock sets the clock used for created_at/updated_at stamps.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// PutRoom adds or replaces a room.
func (s *Store) PutRoom(room *domain.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *room
	s.rooms[room.ID] = &r
}

// PutBalance adds or replaces a user balance.
func (s *Store) PutBalance(balance *domain.UserBalance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := *balance
	s.balances[balance.UserID] = &b
}

// PutBooking stores a booking as-is, bypassing the overlap check. Used to seed history.
func (s *Store) PutBooking(booking *domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := *booking
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.bookings[b.ID] = &b
}

// Bookings returns every stored booking ordered by start time.
func (s *Store) Bookings() []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		c := *b
		out = append(out, &c)
	}
	sortByStart(out)
	return out
}

// Booking store

func (s *Store) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.Blocks() {
		for _, existing := range s.bookings {
			if existing.RoomID == booking.RoomID && existing.Blocks() &&
				domain.Overlaps(booking.StartTime, booking.EndTime, existing.StartTime, existing.EndTime) {
				return nil, domain.ErrBookingOverlap
			}
		}
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := s.clock()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	stored := *booking
	s.bookings[booking.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (s *Store) GetByDateRange(ctx context.Context, from, to time.Time, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !domain.Overlaps(b.StartTime, b.EndTime, from, to) {
			continue
		}
		if filter.RoomID != nil && b.RoomID != *filter.RoomID {
			continue
		}
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.ExcludeBookingID != nil && b.ID == *filter.ExcludeBookingID {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && !b.Blocks() {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.RoomID != roomID || !b.Blocks() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.BookingStatus, update domain.StatusUpdate) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if len(from) > 0 && !containsStatus(from, b.Status) {
		return nil, domain.ErrStatusTransition
	}

	updated := *b
	update.Apply(&updated)
	updated.UpdatedAt = s.clock()

	if updated.Blocks() && !b.Blocks() {
		for _, other := range s.bookings {
			if other.ID != id && other.RoomID == updated.RoomID && other.Blocks() &&
				domain.Overlaps(updated.StartTime, updated.EndTime, other.StartTime, other.EndTime) {
				return nil, domain.ErrBookingOverlap
			}
		}
	}

	s.bookings[id] = &updated
	out := updated
	return &out, nil
}

func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (s *Store) ListUserCancellations(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID != userID || b.Status != domain.StatusCancelled || b.CancelledAt == nil {
			continue
		}
		if b.CancelledBy == nil || *b.CancelledBy != domain.CancelledByUser {
			continue
		}
		if b.CancelledAt.Before(from) || !b.CancelledAt.Before(to) {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CancelledAt.Before(*out[j].CancelledAt) })
	return out, nil
}

func containsStatus(list []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortByStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime.Before(bookings[j].StartTime) })
}
