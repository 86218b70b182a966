package review_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/ptr"
)

// UseCase applies an admin decision to a booking awaiting review
type UseCase struct {
	bookingRepo  BookingRepository
	balanceRepo  BalanceRepository
	roomRepo     RoomRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	balanceRepo BalanceRepository,
	roomRepo RoomRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		balanceRepo:  balanceRepo,
		roomRepo:     roomRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute confirms or cancels a booking.
//
// Confirm marks a pending or to_be_confirmed booking confirmed and paid. Cancel is an
// admin rejection: it refunds token payments in full, charges no fee and does not
// count toward the user's monthly quota.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReviewBooking: booking=%s, admin=%s, action=%s", req.BookingID, req.AdminID, req.Action)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReviewBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	resp := &Response{}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Lock the booking
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("ReviewBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		var (
			from   []domain.BookingStatus
			update domain.StatusUpdate
		)

		// 2. Target status, refunding token payments on cancel
		switch req.Action {
		case ActionConfirm:
			from = []domain.BookingStatus{domain.StatusPending, domain.StatusToBeConfirmed}
			update = domain.StatusUpdate{
				Status:        domain.StatusConfirmed,
				PaymentStatus: ptr.Ptr(domain.PaymentPaid),
			}
		case ActionCancel:
			from = domain.ActiveStatuses
			update = domain.StatusUpdate{
				Status:             domain.StatusCancelled,
				CancelledAt:        ptr.Ptr(now),
				CancellationReason: req.Reason,
				CancelledBy:        ptr.Ptr(domain.CancelledByAdmin),
				CancellationFee:    ptr.Ptr(domain.FeeFree),
				HoursBeforeStart:   ptr.Ptr(booking.HoursBefore(now)),
			}
			if booking.CanBeCancelled() && booking.IsTokenPaid() && booking.TotalCost > 0 {
				if _, err := uc.balanceRepo.AdjustBalance(txCtx, booking.UserID, booking.BalanceSource, booking.TotalCost, now); err != nil {
					uc.logger.Error("ReviewBooking: refund of %d to %s failed: %v", booking.TotalCost, booking.BalanceSource, err)
					return fmt.Errorf("%w: refund: %v", ErrInternal, err)
				}
				resp.Refunded = booking.TotalCost
				update.PaymentStatus = ptr.Ptr(domain.PaymentRefunded)
			}
		}

		// 3. Status
		updated, err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, from, update)
		if err != nil {
			if errors.Is(err, domain.ErrStatusTransition) {
				uc.logger.Warn("ReviewBooking: booking id=%s is %s, cannot %s", booking.ID, booking.Status, req.Action)
				return ErrInvalidTransition
			}
			uc.logger.Error("ReviewBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp.Booking = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReviewBooking: booking id=%s is now %s", resp.Booking.ID, resp.Booking.Status)

	event := domain.EventBookingConfirmed
	if req.Action == ActionCancel {
		event = domain.EventBookingCancelled
	}
	roomName := ""
	if room, err := uc.roomRepo.GetByID(ctx, resp.Booking.RoomID); err == nil {
		roomName = room.Name
	}
	uc.notifier.Notify(ctx, domain.NewBookingEvent(event, resp.Booking, roomName, now))

	return resp, nil
}
