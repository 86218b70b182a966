package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/service/policy"
	"github.com/Oso5408/ofcoz-booking/pkg/ptr"
)

// UseCase cancels bookings on behalf of their owners
type UseCase struct {
	bookingRepo  BookingRepository
	balanceRepo  BalanceRepository
	roomRepo     RoomRepository
	policy       Policy
	guard        SubmitGuard
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	balanceRepo BalanceRepository,
	roomRepo RoomRepository,
	cancellationPolicy Policy,
	guard SubmitGuard,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		balanceRepo:  balanceRepo,
		roomRepo:     roomRepo,
		policy:       cancellationPolicy,
		guard:        guard,
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

// Execute cancels a booking.
//
// The row lock, policy evaluation, refund, fee and status change share one
// transaction. A token booking is refunded to its balance source before the fee is
// taken. A fee the user cannot cover is recorded as unpaid and does not block the
// cancellation.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%s, user=%s", req.BookingID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	acquired, release, err := uc.guard.Acquire(ctx, cancelKey(req.BookingID))
	if err != nil {
		uc.logger.Warn("CancelBooking: submit guard unavailable, continuing: %v", err)
	} else if !acquired {
		return nil, ErrCancelInProgress
	}
	if release != nil {
		defer release()
	}

	now := uc.timeProvider.Now()
	resp := &Response{}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Lock the booking
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: user=%s does not own booking id=%s", req.UserID, req.BookingID)
			return ErrNotOwner
		}
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%s is already %s", req.BookingID, booking.Status)
			return ErrAlreadyCancelled
		}
		if !now.Before(booking.EndTime) {
			return ErrBookingFinished
		}

		// 2. Policy
		hoursBefore := booking.HoursBefore(now)
		decision, err := uc.policy.ShouldDeductToken(txCtx, req.UserID, hoursBefore)
		if err != nil {
			uc.logger.Error("CancelBooking: policy evaluation failed: %v", err)
			return fmt.Errorf("%w: policy evaluation: %v", ErrInternal, err)
		}

		// 3. Refund token payments
		update := domain.StatusUpdate{
			Status:             domain.StatusCancelled,
			CancelledAt:        ptr.Ptr(now),
			CancellationReason: req.Reason,
			CancelledBy:        ptr.Ptr(domain.CancelledByUser),
			HoursBeforeStart:   ptr.Ptr(hoursBefore),
		}

		if booking.IsTokenPaid() && booking.TotalCost > 0 {
			if _, err := uc.balanceRepo.AdjustBalance(txCtx, booking.UserID, booking.BalanceSource, booking.TotalCost, now); err != nil {
				uc.logger.Error("CancelBooking: refund of %d to %s failed: %v", booking.TotalCost, booking.BalanceSource, err)
				return fmt.Errorf("%w: refund: %v", ErrInternal, err)
			}
			resp.Refunded = booking.TotalCost
			update.PaymentStatus = ptr.Ptr(domain.PaymentRefunded)
		}

		// 4. Fee
		fee := domain.FeeFree
		if decision.ShouldDeduct {
			fee = domain.FeeCharged
			source := booking.FeeSource()
			_, err := uc.balanceRepo.AdjustBalance(txCtx, booking.UserID, source, -domain.CancellationFeeUnits, now)
			switch {
			case err == nil:
				resp.TokenDeducted = true
			case isInsufficient(err):
				uc.logger.Warn("CancelBooking: fee could not be taken from %s for user=%s: %v", source, booking.UserID, err)
				fee = domain.FeeUnpaid
				resp.InsufficientTokens = true
			default:
				uc.logger.Error("CancelBooking: fee debit failed: %v", err)
				return fmt.Errorf("%w: fee debit: %v", ErrInternal, err)
			}
		}
		update.CancellationFee = ptr.Ptr(fee)

		// 5. Status
		cancelled, err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.ActiveStatuses, update)
		if err != nil {
			if errors.Is(err, domain.ErrStatusTransition) {
				return ErrAlreadyCancelled
			}
			uc.logger.Error("CancelBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp.Booking = cancelled
		resp.Reason = decision.Reason
		resp.Stats = policy.Record(decision.Stats, fee, hoursBefore)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%s cancelled, refunded=%d, fee=%s, reason=%s",
		resp.Booking.ID, resp.Refunded, *resp.Booking.CancellationFee, resp.Reason)

	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingCancelled, resp.Booking, uc.roomName(ctx, resp.Booking.RoomID), now))

	return resp, nil
}

// roomName is best effort; a missing name does not fail the notification.
func (uc *UseCase) roomName(ctx context.Context, roomID int64) string {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		uc.logger.Warn("CancelBooking: room id=%d lookup for notification failed: %v", roomID, err)
		return ""
	}
	return room.Name
}

func isInsufficient(err error) bool {
	return errors.Is(err, domain.ErrBalanceTooLow) ||
		errors.Is(err, domain.ErrBalanceExpired) ||
		errors.Is(err, domain.ErrUserNotFound)
}
