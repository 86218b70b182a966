package upload_receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/ptr"
)

// UseCase attaches a payment receipt to a cash booking and sends it for review
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	storage      ReceiptStorage
	notifier     Notifier
	maxBytes     int64
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	storage ReceiptStorage,
	notifier Notifier,
	maxBytes int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		storage:      storage,
		notifier:     notifier,
		maxBytes:     maxBytes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute stores the receipt and moves the booking to to_be_confirmed.
// Uploading again before review replaces the previous receipt URL.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UploadReceipt: booking=%s, user=%s, file=%s (%s, %d bytes)",
		req.BookingID, req.UserID, req.File.Name, req.File.ContentType, req.File.Size)

	if err := validateRequest(req, uc.maxBytes); err != nil {
		uc.logger.Warn("UploadReceipt: validation failed: %v", err)
		return nil, err
	}

	// 1. Ownership and state
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UploadReceipt: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if booking.UserID != req.UserID {
		uc.logger.Warn("UploadReceipt: user=%s does not own booking id=%s", req.UserID, req.BookingID)
		return nil, ErrNotOwner
	}
	if !booking.AcceptsReceipt() {
		uc.logger.Warn("UploadReceipt: booking id=%s (%s, %s) does not accept receipts",
			booking.ID, booking.PaymentMethod, booking.Status)
		return nil, ErrReceiptNotAccepted
	}

	// 2. Store the file before touching the booking
	url, err := uc.storage.UploadReceipt(ctx, booking.ID, req.File)
	if err != nil {
		uc.logger.Error("UploadReceipt: storage failed for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// 3. Attach the receipt and wait for review
	updated, err := uc.bookingRepo.UpdateStatus(ctx, booking.ID,
		[]domain.BookingStatus{domain.StatusPending, domain.StatusToBeConfirmed},
		domain.StatusUpdate{
			Status:     domain.StatusToBeConfirmed,
			ReceiptURL: ptr.Ptr(url),
		})
	if err != nil {
		if errors.Is(err, domain.ErrStatusTransition) {
			return nil, ErrReceiptNotAccepted
		}
		uc.logger.Error("UploadReceipt: failed to update booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}

	uc.logger.Info("UploadReceipt: booking id=%s is waiting for review", updated.ID)

	roomName := ""
	if room, err := uc.roomRepo.GetByID(ctx, updated.RoomID); err == nil {
		roomName = room.Name
	}
	uc.notifier.Notify(ctx, domain.NewBookingEvent(domain.EventReceiptUploaded, updated, roomName, uc.timeProvider.Now()))

	return &Response{Booking: updated}, nil
}
