package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
)

// Service serves booking and balance reads
type Service struct {
	bookingRepo BookingRepository
	balanceRepo BalanceRepository
	logger      Logger
}

func NewService(
	bookingRepo BookingRepository,
	balanceRepo BalanceRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		balanceRepo: balanceRepo,
		logger:      logger,
	}
}

// GetByID returns a booking visible to its owner or to an admin
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, requester uuid.UUID, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, requester)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != requester && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", requester, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings returns a user's bookings, newest start first, optionally by status
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBookings returns bookings overlapping [From, To) for the admin calendar.
//
// Examples:
//   - everything active this week: From/To only
//   - one room: set RoomID
//   - cash bookings awaiting review: Status = "to_be_confirmed"
//   - including cancelled and rescheduled: IncludeInactive = true
func (s *Service) GetBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBookings: period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	if req.RoomID != nil {
		logMsg += fmt.Sprintf(", room=%d", *req.RoomID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.From.IsZero() || req.To.IsZero() || !req.From.Before(req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByDateRange(ctx, req.From, req.To, filter)
	if err != nil {
		s.logger.Error("GetBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetBalance returns the user's token and package balances
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*models.BalanceResponse, error) {
	balance, err := s.balanceRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrBalanceNotFound
		}
		s.logger.Error("GetBalance: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetBalance - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBalance(balance), nil
}

// IsAdmin reports the is_admin flag of the user's balance row. Users without a row are not admins.
func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	balance, err := s.balanceRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: IsAdmin - repository error: %v", ErrInternal, err)
	}
	return balance.IsAdmin, nil
}
