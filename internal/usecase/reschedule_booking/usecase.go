package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/ptr"
	"github.com/Oso5408/ofcoz-booking/pkg/txmanager"
)

// UseCase moves a booking to a new interval in the same room
type UseCase struct {
	bookingRepo  BookingRepository
	balanceRepo  BalanceRepository
	roomRepo     RoomRepository
	conflicts    ConflictChecker
	guard        SubmitGuard
	notifier     Notifier
	txManager    TransactionManager
	hours        domain.OperatingHours
	pricing      domain.Pricing
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	balanceRepo BalanceRepository,
	roomRepo RoomRepository,
	conflicts ConflictChecker,
	guard SubmitGuard,
	notifier Notifier,
	txManager TransactionManager,
	hours domain.OperatingHours,
	pricing domain.Pricing,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		balanceRepo:  balanceRepo,
		roomRepo:     roomRepo,
		conflicts:    conflicts,
		guard:        guard,
		notifier:     notifier,
		txManager:    txManager,
		hours:        hours,
		pricing:      pricing,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute retires the booking as rescheduled and creates its replacement.
//
// Both writes share one transaction. The old booking is retired first so it does not
// block its own replacement. Token payments are refunded and charged again at the new
// cost. Rescheduling charges no cancellation fee and uses no quota.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, user=%s, new=%s-%s",
		req.BookingID, req.UserID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := uc.hours.ValidateInterval(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("RescheduleBooking: interval rejected: %v", err)
		return nil, err
	}

	acquired, release, err := uc.guard.Acquire(ctx, rescheduleKey(req.BookingID))
	if err != nil {
		uc.logger.Warn("RescheduleBooking: submit guard unavailable, continuing: %v", err)
	} else if !acquired {
		return nil, ErrInProgress
	}
	if release != nil {
		defer release()
	}

	resp := &Response{}
	var roomName string

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		old, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if old.UserID != req.UserID {
			return ErrNotOwner
		}
		if !old.CanBeCancelled() || !now.Before(old.EndTime) {
			uc.logger.Warn("RescheduleBooking: booking id=%s is %s and ends %s", old.ID, old.Status, old.EndTime.Format(time.RFC3339))
			return ErrNotReschedulable
		}

		room, err := uc.roomRepo.GetByID(txCtx, old.RoomID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get room id=%d: %v", old.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
		}
		roomName = room.Name

		available, err := uc.conflicts.CheckAvailability(txCtx, old.RoomID, req.StartTime, req.EndTime, &old.ID)
		if err != nil {
			if errors.Is(err, domain.ErrSerializationConflict) {
				return err
			}
			uc.logger.Warn("RescheduleBooking: availability unknown, relying on the store: %v", err)
		} else if !available {
			return ErrSlotConflict
		}

		// 1. Retire the old booking, pointing at the replacement
		newID := uuid.New()
		retired, err := uc.bookingRepo.UpdateStatus(txCtx, old.ID, domain.ActiveStatuses, domain.StatusUpdate{
			Status:        domain.StatusRescheduled,
			RescheduledTo: ptr.Ptr(newID),
		})
		if err != nil {
			if errors.Is(err, domain.ErrStatusTransition) {
				return ErrNotReschedulable
			}
			return fmt.Errorf("%w: failed to retire booking: %w", ErrInternal, err)
		}

		// 2. Create the replacement with the same room and payment terms
		replacement := &domain.Booking{
			ID:            newID,
			UserID:        old.UserID,
			RoomID:        old.RoomID,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Status:        old.Status,
			PaymentMethod: old.PaymentMethod,
			BalanceSource: old.BalanceSource,
			PaymentStatus: old.PaymentStatus,
			Equipment:     old.Equipment,
			ReceiptURL:    old.ReceiptURL,
			Notes:         old.Notes,
		}
		if old.IsTokenPaid() {
			replacement.TotalCost = uc.pricing.Cost(room, old.BalanceSource, req.StartTime, req.EndTime, old.Equipment)
		}

		created, err := uc.bookingRepo.Create(txCtx, replacement)
		if err != nil {
			if errors.Is(err, domain.ErrBookingOverlap) {
				return ErrSlotConflict
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 3. Refund the old cost, then charge the new one
		if old.IsTokenPaid() {
			if err := uc.recharge(txCtx, old, created, now); err != nil {
				return err
			}
		}

		resp.Old = retired
		resp.New = created
		return nil
	})

	if err != nil {
		if isSerializationConflict(err) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%s replaced by id=%s", resp.Old.ID, resp.New.ID)

	event := domain.NewBookingEvent(domain.EventBookingRescheduled, resp.New, roomName, now)
	event.RelatedID = ptr.Ptr(resp.Old.ID)
	uc.notifier.Notify(ctx, event)

	return resp, nil
}

func (uc *UseCase) recharge(ctx context.Context, old, replacement *domain.Booking, now time.Time) error {
	if old.TotalCost > 0 {
		if _, err := uc.balanceRepo.AdjustBalance(ctx, old.UserID, old.BalanceSource, old.TotalCost, now); err != nil {
			uc.logger.Error("RescheduleBooking: refund of %d to %s failed: %v", old.TotalCost, old.BalanceSource, err)
			return fmt.Errorf("%w: refund: %w", ErrInternal, err)
		}
	}
	if replacement.TotalCost > 0 {
		_, err := uc.balanceRepo.AdjustBalance(ctx, replacement.UserID, replacement.BalanceSource, -replacement.TotalCost, now)
		if err != nil {
			if errors.Is(err, domain.ErrBalanceTooLow) || errors.Is(err, domain.ErrBalanceExpired) || errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
			}
			return fmt.Errorf("%w: debit: %w", ErrInternal, err)
		}
	}
	return nil
}

func isSerializationConflict(err error) bool {
	return errors.Is(err, txmanager.ErrSerializationFailure) || errors.Is(err, domain.ErrSerializationConflict)
}
