package get_available_slots

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// UseCase computes start and end time options for a room
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	hours        domain.OperatingHours
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	hours domain.OperatingHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider replaces the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// StartOptions returns the start times still bookable on req.Date.
// If bookings cannot be loaded the full grid is returned with Degraded set; the
// conflict check at submission stays authoritative.
func (uc *UseCase) StartOptions(ctx context.Context, req *StartRequest) (*Response, error) {
	uc.logger.Info("StartOptions: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	if err := validateStartRequest(req); err != nil {
		uc.logger.Warn("StartOptions: validation failed: %v", err)
		return nil, err
	}

	date := uc.localDate(req.Date)
	now := uc.timeProvider.Now()

	if err := uc.checkRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	bookings, err := uc.dayBookings(ctx, req.RoomID, date, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Warn("StartOptions: falling back to full grid for room=%d, date=%s: %v",
			req.RoomID, date.Format(domain.DateFormat), err)
		return &Response{
			RoomID:   req.RoomID,
			Date:     date,
			Options:  generateStartOptions(uc.hours, date, now, nil),
			Degraded: true,
		}, nil
	}

	options := generateStartOptions(uc.hours, date, now, bookings)
	uc.logger.Info("StartOptions: room=%d, date=%s, options=%d, bookings=%d",
		req.RoomID, date.Format(domain.DateFormat), len(options), len(bookings))

	return &Response{RoomID: req.RoomID, Date: date, Options: options}, nil
}

// EndOptions returns end times for a booking starting at req.StartTime.
func (uc *UseCase) EndOptions(ctx context.Context, req *EndRequest) (*Response, error) {
	uc.logger.Info("EndOptions: room=%d, date=%s, start=%s",
		req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateEndRequest(req); err != nil {
		uc.logger.Warn("EndOptions: validation failed: %v", err)
		return nil, err
	}

	date := uc.localDate(req.Date)
	startAt, err := req.StartTime.On(date, uc.hours.Location)
	if err != nil {
		return nil, ErrInvalidInput
	}

	if err := uc.checkRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	bookings, err := uc.dayBookings(ctx, req.RoomID, date, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Warn("EndOptions: falling back to closing-time bound for room=%d: %v", req.RoomID, err)
		return &Response{
			RoomID:   req.RoomID,
			Date:     date,
			Options:  generateEndOptions(uc.hours, startAt, now, nil),
			Degraded: true,
		}, nil
	}

	options := generateEndOptions(uc.hours, startAt, now, bookings)
	return &Response{RoomID: req.RoomID, Date: date, Options: options}, nil
}

// checkRoom rejects unknown or hidden rooms. Other lookup failures are logged and
// ignored so option generation keeps degrading instead of failing.
func (uc *UseCase) checkRoom(ctx context.Context, roomID int64) error {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			uc.logger.Warn("checkRoom: room id=%d not found", roomID)
			return ErrRoomNotFound
		}
		uc.logger.Warn("checkRoom: failed to load room id=%d: %v", roomID, err)
		return nil
	}
	if room.Hidden {
		return ErrRoomNotFound
	}
	return nil
}

func (uc *UseCase) dayBookings(ctx context.Context, roomID int64, date time.Time, exclude *uuid.UUID) ([]*domain.Booking, error) {
	open, close := uc.hours.Day(date)
	return uc.bookingRepo.GetByDateRange(ctx, open, close, domain.BookingFilter{
		RoomID:           &roomID,
		ExcludeBookingID: exclude,
	})
}

// localDate pins a date-only value to the venue timezone without shifting the calendar day.
func (uc *UseCase) localDate(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, uc.hours.Location)
}
