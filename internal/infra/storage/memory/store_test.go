package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/ptr"
)

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func booking(roomID int64, fromHour, toHour int) *domain.Booking {
	return &domain.Booking{
		RoomID:        roomID,
		UserID:        uuid.New(),
		StartTime:     day.Add(time.Duration(fromHour) * time.Hour),
		EndTime:       day.Add(time.Duration(toHour) * time.Hour),
		Status:        domain.StatusConfirmed,
		PaymentMethod: domain.PaymentCash,
	}
}

func TestCreate_RejectsOverlapInSameRoomOnly(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Create(ctx, booking(1, 10, 12))
	require.NoError(t, err)

	_, err = s.Create(ctx, booking(1, 11, 13))
	assert.ErrorIs(t, err, domain.ErrBookingOverlap)

	_, err = s.Create(ctx, booking(2, 11, 13))
	assert.NoError(t, err, "other room")

	_, err = s.Create(ctx, booking(1, 12, 13))
	assert.NoError(t, err, "back-to-back")
}

func TestCreate_CancelledBookingDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	cancelled := booking(1, 10, 12)
	cancelled.Status = domain.StatusCancelled
	s.PutBooking(cancelled)

	_, err := s.Create(ctx, booking(1, 10, 12))
	assert.NoError(t, err)
}

func TestGetByDateRange_Filters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	keep, err := s.Create(ctx, booking(1, 10, 12))
	require.NoError(t, err)
	other, err := s.Create(ctx, booking(1, 14, 15))
	require.NoError(t, err)
	_, err = s.Create(ctx, booking(2, 10, 12))
	require.NoError(t, err)

	got, err := s.GetByDateRange(ctx, day, day.Add(24*time.Hour), domain.BookingFilter{
		RoomID:           ptr.Ptr(int64(1)),
		ExcludeBookingID: &other.ID,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)
}

func TestUpdateStatus_RequiresExpectedStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	b, err := s.Create(ctx, booking(1, 10, 12))
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, b.ID, domain.ActiveStatuses, domain.StatusUpdate{Status: domain.StatusCancelled})
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, b.ID, domain.ActiveStatuses, domain.StatusUpdate{Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, domain.ErrStatusTransition)

	_, err = s.UpdateStatus(ctx, uuid.New(), nil, domain.StatusUpdate{Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestAdjustBalance_NeverNegative(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	user := uuid.New()
	s.PutBalance(&domain.UserBalance{UserID: user, Tokens: 2})

	_, err := s.AdjustBalance(ctx, user, domain.BalanceTokens, -3, day)
	assert.ErrorIs(t, err, domain.ErrBalanceTooLow)

	got, err := s.AdjustBalance(ctx, user, domain.BalanceTokens, -2, day)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Tokens)

	_, err = s.AdjustBalance(ctx, uuid.New(), domain.BalanceTokens, 1, day)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdjustBalance_ExpiredDP20CannotBeConsumed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	user := uuid.New()
	expiry := day.Add(-time.Hour)
	s.PutBalance(&domain.UserBalance{UserID: user, DP20Balance: 5, DP20Expiry: &expiry})

	_, err := s.AdjustBalance(ctx, user, domain.BalanceDP20, -1, day)
	assert.ErrorIs(t, err, domain.ErrBalanceExpired)

	got, err := s.AdjustBalance(ctx, user, domain.BalanceDP20, 1, day)
	require.NoError(t, err, "refunds are allowed after expiry")
	assert.Equal(t, 6, got.DP20Balance)
}

func TestAssignPackage_CreatesAndSetsExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	user := uuid.New()
	expiry := domain.DP20Expiry(day)

	got, err := s.AssignPackage(ctx, user, domain.BalanceDP20, 20, &expiry)
	require.NoError(t, err)
	assert.Equal(t, 20, got.DP20Balance)
	require.NotNil(t, got.DP20Expiry)
	assert.Equal(t, expiry, *got.DP20Expiry)
}

func TestListUserCancellations_OnlyUserCancellationsInRange(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	user := uuid.New()

	add := func(by domain.CancelledBy, at time.Time) {
		b := booking(1, 10, 11)
		b.UserID = user
		b.Status = domain.StatusCancelled
		b.CancelledBy = &by
		b.CancelledAt = &at
		s.PutBooking(b)
	}
	add(domain.CancelledByUser, day.Add(time.Hour))
	add(domain.CancelledByAdmin, day.Add(2*time.Hour))
	add(domain.CancelledByUser, day.AddDate(0, -1, 0))

	got, err := s.ListUserCancellations(ctx, user, day, day.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tx := NewTxManager(s)
	user := uuid.New()
	s.PutBalance(&domain.UserBalance{UserID: user, Tokens: 5})
	boom := errors.New("boom")

	err := tx.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.Create(ctx, booking(1, 10, 12)); err != nil {
			return err
		}
		if _, err := s.AdjustBalance(ctx, user, domain.BalanceTokens, -2, day); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Bookings())
	got, err := s.GetUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Tokens)
}

func TestRooms_ListSkipsHidden(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.PutRoom(&domain.Room{ID: 2, Name: "Loft"})
	s.PutRoom(&domain.Room{ID: 1, Name: "Garden"})
	s.PutRoom(&domain.Room{ID: 3, Name: "Storage", Hidden: true})

	rooms, err := s.Rooms().List(ctx, false)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, int64(1), rooms[0].ID)

	_, err = s.Rooms().GetByID(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}
