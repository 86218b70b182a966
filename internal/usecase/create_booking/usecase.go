package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/txmanager"
)

// UseCase creates bookings
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

// Execute creates a booking.
//
// The availability check, the insert and the token debit run in one serializable
// transaction. The store's overlap rule is authoritative: a rejected insert or a
// serialization failure both surface as ErrSlotConflict, and nothing is debited.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, room=%d, %s-%s, method=%s",
		req.UserID, req.RoomID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), req.PaymentMethod)

	// 1. Input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := uc.hours.ValidateInterval(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("CreateBooking: interval rejected: %v", err)
		return nil, err
	}

	// 2. Room
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
	}
	if room.Hidden {
		return nil, ErrRoomNotFound
	}
	if !room.Accepts(req.PaymentMethod) {
		uc.logger.Warn("CreateBooking: room id=%d does not accept %s", req.RoomID, req.PaymentMethod)
		return nil, ErrPaymentMethodNotAccepted
	}

	// 3. Duplicate submit guard
	acquired, release, err := uc.guard.Acquire(ctx, submitKey(req))
	if err != nil {
		uc.logger.Warn("CreateBooking: submit guard unavailable, continuing: %v", err)
	} else if !acquired {
		uc.logger.Warn("CreateBooking: duplicate submission for user=%s, room=%d", req.UserID, req.RoomID)
		return nil, ErrDuplicateSubmit
	}
	if release != nil {
		defer release()
	}

	booking := &domain.Booking{
		UserID:        req.UserID,
		RoomID:        req.RoomID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PaymentMethod: req.PaymentMethod,
		Equipment:     req.Equipment,
		Notes:         req.Notes,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if req.PaymentMethod == domain.PaymentToken {
		booking.BalanceSource = req.BalanceSource
		booking.TotalCost = uc.pricing.Cost(room, req.BalanceSource, req.StartTime, req.EndTime, req.Equipment)
		booking.Status = domain.StatusConfirmed
		booking.PaymentStatus = domain.PaymentPaid
	}

	var (
		created *domain.Booking
		balance *domain.UserBalance
	)

	// 4. Check, insert and debit in one transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		available, err := uc.conflicts.CheckAvailability(txCtx, req.RoomID, req.StartTime, req.EndTime, nil)
		if err != nil {
			if errors.Is(err, domain.ErrSerializationConflict) {
				return err
			}
			uc.logger.Warn("CreateBooking: availability unknown, relying on the store: %v", err)
		} else if !available {
			uc.logger.Warn("CreateBooking: room id=%d already booked for %s-%s",
				req.RoomID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))
			return ErrSlotConflict
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, domain.ErrBookingOverlap) {
				uc.logger.Warn("CreateBooking: insert rejected by overlap constraint for room id=%d", req.RoomID)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		if booking.PaymentMethod != domain.PaymentToken || booking.TotalCost == 0 {
			return nil
		}

		balance, err = uc.balanceRepo.AdjustBalance(txCtx, req.UserID, booking.BalanceSource, -booking.TotalCost, now)
		if err != nil {
			if isInsufficient(err) {
				uc.logger.Warn("CreateBooking: user=%s cannot pay %d from %s: %v",
					req.UserID, booking.TotalCost, booking.BalanceSource, err)
				return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
			}
			uc.logger.Error("CreateBooking: failed to debit user=%s: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to debit balance: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if isSerializationConflict(err) {
			uc.logger.Warn("CreateBooking: serialization failure for room id=%d", req.RoomID)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, cost=%d", created.ID, created.TotalCost)

	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventBookingCreated, created, room.Name, now))

	return &Response{Booking: created, Balance: balance}, nil
}

func isInsufficient(err error) bool {
	return errors.Is(err, domain.ErrBalanceTooLow) ||
		errors.Is(err, domain.ErrBalanceExpired) ||
		errors.Is(err, domain.ErrUserNotFound)
}

// isSerializationConflict reports a 40001 raised either by a statement or at commit.
func isSerializationConflict(err error) bool {
	return errors.Is(err, txmanager.ErrSerializationFailure) || errors.Is(err, domain.ErrSerializationConflict)
}
