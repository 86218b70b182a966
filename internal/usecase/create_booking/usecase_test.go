package create_booking

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/infra/storage/memory"
	"github.com/Oso5408/ofcoz-booking/internal/service/conflicts"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
	"github.com/Oso5408/ofcoz-booking/pkg/ptr"
)

var hkt = time.FixedZone("HKT", 8*3600)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type openGuard struct {
	mu    sync.Mutex
	held  map[string]bool
	err   error
	calls int
}

func (g *openGuard) Acquire(_ context.Context, key string) (bool, func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return false, nil, g.err
	}
	if g.held[key] {
		return false, nil, nil
	}
	return true, func() {}, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (n *recordingNotifier) Notify(_ context.Context, e domain.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

type brokenChecker struct{}

func (brokenChecker) CheckAvailability(context.Context, int64, time.Time, time.Time, *uuid.UUID) (bool, error) {
	return false, errors.New("statement timeout")
}

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	guard    *openGuard
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithChecker(t, nil)
}

func newFixtureWithChecker(t *testing.T, checker ConflictChecker) *fixture {
	t.Helper()

	log := logger.NewWriter(io.Discard, "error")
	store := memory.NewStore()
	store.PutRoom(&domain.Room{
		ID:             1,
		Name:           "Room A",
		Prices:         domain.RoomPrices{TokenHourly: 3},
		BookingOptions: []domain.PaymentMethod{domain.PaymentToken, domain.PaymentCash},
	})
	store.PutRoom(&domain.Room{ID: 2, Name: "Token room", BookingOptions: []domain.PaymentMethod{domain.PaymentToken}})
	store.PutRoom(&domain.Room{ID: 3, Name: "Back office", Hidden: true})

	if checker == nil {
		checker = conflicts.NewService(store, log)
	}

	f := &fixture{
		store:    store,
		guard:    &openGuard{held: map[string]bool{}},
		notifier: &recordingNotifier{},
	}
	f.uc = NewUseCase(store, store, store.Rooms(), checker, f.guard, f.notifier, memory.NewTxManager(store),
		domain.DefaultOperatingHours(hkt), domain.DefaultPricing(), log).
		WithTimeProvider(fixedTime{now: time.Date(2025, 5, 30, 9, 0, 0, 0, hkt)})
	return f
}

func at(h, m int) time.Time {
	return time.Date(2025, 6, 1, h, m, 0, 0, hkt)
}

func tokenRequest(user uuid.UUID, start, end time.Time) *Request {
	return &Request{
		UserID:        user,
		RoomID:        1,
		StartTime:     start,
		EndTime:       end,
		PaymentMethod: domain.PaymentToken,
	}
}

func TestExecute_TokenBookingDebitsBalance(t *testing.T) {
	f := newFixture(t)
	user := uuid.New()
	f.store.PutBalance(&domain.UserBalance{UserID: user, Tokens: 5})

	resp, err := f.uc.Execute(context.Background(), tokenRequest(user, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Equal(t, domain.PaymentPaid, resp.Booking.PaymentStatus)
	assert.Equal(t, domain.BalanceTokens, resp.Booking.BalanceSource)
	assert.Equal(t, 3, resp.Booking.TotalCost)
	require.NotNil(t, resp.Balance)
	assert.Equal(t, 2, resp.Balance.Tokens)

	balance, err := f.store.GetUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Tokens)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventBookingCreated, f.notifier.events[0].Type)
	assert.Equal(t, "Room A", f.notifier.events[0].RoomName)
}

func TestExecute_CashBookingIsPendingAndFree(t *testing.T) {
	f := newFixture(t)
	user := uuid.New()

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID: user, RoomID: 1, StartTime: at(14, 0), EndTime: at(16, 0), PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, domain.PaymentUnpaid, resp.Booking.PaymentStatus)
	assert.Equal(t, 0, resp.Booking.TotalCost)
	assert.Nil(t, resp.Balance)
}

func TestExecute_PackageBalanceCostsOneUnit(t *testing.T) {
	f := newFixture(t)
	user := uuid.New()
	f.store.PutBalance(&domain.UserBalance{UserID: user, BR15Balance: 2})

	req := tokenRequest(user, at(10, 0), at(15, 0))
	req.BalanceSource = domain.BalanceBR15
	req.Equipment = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Booking.TotalCost)
	assert.Equal(t, 1, resp.Balance.BR15Balance)
}

func TestExecute_InsufficientBalanceWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		balance *domain.UserBalance
	}{
		{"too low", &domain.UserBalance{Tokens: 2}},
		{"expired", &domain.UserBalance{Tokens: 50, TokenValidUntil: ptr.Ptr(time.Date(2025, 5, 1, 0, 0, 0, 0, hkt))}},
		{"no balance row", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			user := uuid.New()
			if tt.balance != nil {
				tt.balance.UserID = user
				f.store.PutBalance(tt.balance)
			}

			_, err := f.uc.Execute(context.Background(), tokenRequest(user, at(10, 0), at(11, 0)))
			assert.ErrorIs(t, err, ErrInsufficientBalance)
			assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
			assert.Empty(t, f.store.Bookings())
			assert.Empty(t, f.notifier.events)

			if tt.balance != nil {
				balance, err := f.store.GetUser(context.Background(), user)
				require.NoError(t, err)
				assert.Equal(t, tt.balance.Tokens, balance.Tokens)
			}
		})
	}
}

func TestExecute_OverlapIsConflict(t *testing.T) {
	f := newFixture(t)
	first := uuid.New()

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID: first, RoomID: 1, StartTime: at(10, 0), EndTime: at(12, 0), PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID: uuid.New(), RoomID: 1, StartTime: at(11, 0), EndTime: at(13, 0), PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID: uuid.New(), RoomID: 1, StartTime: at(12, 0), EndTime: at(13, 0), PaymentMethod: domain.PaymentCash,
	})
	assert.NoError(t, err, "adjacent booking must be accepted")
}

func TestExecute_StoreRejectsOverlapWhenCheckerFails(t *testing.T) {
	f := newFixtureWithChecker(t, brokenChecker{})

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID: uuid.New(), RoomID: 1, StartTime: at(10, 0), EndTime: at(12, 0), PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err, "an unknown availability answer must not block the write")

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID: uuid.New(), RoomID: 1, StartTime: at(10, 0), EndTime: at(12, 0), PaymentMethod: domain.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ConcurrentSubmitsBookOnce(t *testing.T) {
	f := newFixture(t)

	const n = 8
	users := make([]uuid.UUID, n)
	for i := range users {
		users[i] = uuid.New()
		f.store.PutBalance(&domain.UserBalance{UserID: users[i], Tokens: 5})
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		conflicted int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(user uuid.UUID) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), tokenRequest(user, at(10, 0), at(11, 0)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotConflict):
				conflicted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(users[i])
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicted)
	assert.Len(t, f.store.Bookings(), 1)

	total := 0
	for _, user := range users {
		balance, err := f.store.GetUser(context.Background(), user)
		require.NoError(t, err)
		total += balance.Tokens
	}
	assert.Equal(t, n*5-3, total, "only the winner is charged")
}

func TestExecute_DuplicateSubmitGuard(t *testing.T) {
	f := newFixture(t)
	req := &Request{UserID: uuid.New(), RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentCash}
	f.guard.held[submitKey(req)] = true

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateSubmit)
	assert.Empty(t, f.store.Bookings())
}

func TestExecute_GuardErrorDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.guard.err = errors.New("redis: connection refused")

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID: uuid.New(), RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.guard.calls)
}

func TestExecute_Rejections(t *testing.T) {
	user := uuid.New()

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"missing user", &Request{RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentCash}, ErrInvalidInput},
		{"unknown method", &Request{UserID: user, RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: "card"}, ErrInvalidInput},
		{"cash with source", &Request{UserID: user, RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentCash, BalanceSource: domain.BalanceTokens}, ErrInvalidInput},
		{"unknown source", &Request{UserID: user, RoomID: 1, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentToken, BalanceSource: "gold"}, ErrInvalidInput},
		{"reversed", &Request{UserID: user, RoomID: 1, StartTime: at(11, 0), EndTime: at(10, 0), PaymentMethod: domain.PaymentCash}, domain.ErrIntervalOrder},
		{"too short", &Request{UserID: user, RoomID: 1, StartTime: at(10, 0), EndTime: at(10, 30), PaymentMethod: domain.PaymentCash}, domain.ErrIntervalTooShort},
		{"after closing", &Request{UserID: user, RoomID: 1, StartTime: at(21, 30), EndTime: at(22, 30), PaymentMethod: domain.PaymentCash}, domain.ErrIntervalClosed},
		{"unknown room", &Request{UserID: user, RoomID: 9, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentCash}, ErrRoomNotFound},
		{"hidden room", &Request{UserID: user, RoomID: 3, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentCash}, ErrRoomNotFound},
		{"method not accepted", &Request{UserID: user, RoomID: 2, StartTime: at(10, 0), EndTime: at(11, 0), PaymentMethod: domain.PaymentCash}, ErrPaymentMethodNotAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.store.Bookings())
		})
	}
}
