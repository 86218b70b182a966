// Package conflicts answers whether a room is free over an interval.
//
// The answer is advisory: the bookings table carries an exclusion constraint that
// rejects overlapping inserts, so callers treat a positive answer as "probably free"
// and let the write decide.
package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CheckAvailability reports whether [start,end) is free in roomID. Cancelled and
// rescheduled bookings never conflict, and excludeID (when set) is ignored so a
// booking can be checked against everything but itself.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidRange
	}

	overlap, err := s.bookingRepo.HasOverlap(ctx, roomID, start, end, excludeID)
	if err != nil {
		s.logger.Error("CheckAvailability: room=%d, %s-%s: %v",
			roomID, start.Format(time.RFC3339), end.Format(time.RFC3339), err)
		return false, fmt.Errorf("%w: CheckAvailability - repository error: %w", ErrUnavailable, err)
	}

	if overlap {
		s.logger.Info("CheckAvailability: room=%d is taken for %s-%s",
			roomID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return !overlap, nil
}
