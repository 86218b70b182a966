package conflicts

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/infra/storage/memory"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func hour(h int) time.Time {
	return time.Date(2025, 6, 1, h, 0, 0, 0, time.UTC)
}

func TestCheckAvailability(t *testing.T) {
	store := memory.NewStore()
	existing, err := store.Create(context.Background(), &domain.Booking{
		RoomID: 1, UserID: uuid.New(), StartTime: hour(10), EndTime: hour(12), Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	store.PutBooking(&domain.Booking{
		RoomID: 1, UserID: uuid.New(), StartTime: hour(14), EndTime: hour(16), Status: domain.StatusCancelled,
	})

	svc := NewService(store, logger.NewWriter(io.Discard, "error"))

	tests := []struct {
		name      string
		roomID    int64
		start     time.Time
		end       time.Time
		excludeID *uuid.UUID
		want      bool
	}{
		{"overlapping", 1, hour(11), hour(13), nil, false},
		{"covering", 1, hour(9), hour(13), nil, false},
		{"adjacent after", 1, hour(12), hour(13), nil, true},
		{"adjacent before", 1, hour(9), hour(10), nil, true},
		{"cancelled booking does not block", 1, hour(14), hour(16), nil, true},
		{"other room", 2, hour(10), hour(12), nil, true},
		{"excluded self", 1, hour(10), hour(12), &existing.ID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CheckAvailability(context.Background(), tt.roomID, tt.start, tt.end, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAvailability_InvalidRange(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, logger.NewWriter(io.Discard, "error"))

	_, err := svc.CheckAvailability(context.Background(), 1, hour(12), hour(12), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "HasOverlap", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckAvailability_RepositoryError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("HasOverlap", mock.Anything, int64(1), hour(10), hour(11), (*uuid.UUID)(nil)).
		Return(false, errors.New("timeout"))
	svc := NewService(repo, logger.NewWriter(io.Discard, "error"))

	available, err := svc.CheckAvailability(context.Background(), 1, hour(10), hour(11), nil)
	assert.False(t, available)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, domain.ErrTransient)
	repo.AssertExpectations(t)
}
