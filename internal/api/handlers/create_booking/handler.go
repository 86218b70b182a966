package create_booking

import (
	"errors"
	"net/http"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	createBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgMissingUserID        = "missing user id"
	msgRoomNotFound         = "room not found"
	msgSlotNotAvailable     = "the selected time slot is no longer available"
	msgDuplicateSubmit      = "an identical booking request is already being processed"
	msgInsufficientBalance  = "your balance cannot cover this booking"
	msgPaymentNotAccepted   = "this room does not accept the selected payment method"
	msgInvalidBookingWindow = "the requested time is not bookable"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: user_id=%s, error=%v", userID, err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%s, room_id=%d", userID, req.RoomID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDuplicateSubmit):
			h.logger.Warn("POST /bookings - Duplicate submit: user_id=%s, room_id=%d", userID, req.RoomID)
			handlers.RespondConflict(w, msgDuplicateSubmit)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrInsufficientBalance):
			h.logger.Warn("POST /bookings - Insufficient balance: user_id=%s, source=%s", userID, req.BalanceSource)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInsufficientBalance)

		case errors.Is(err, createBooking.ErrPaymentMethodNotAccepted):
			handlers.RespondBadRequest(w, msgPaymentNotAccepted)

		case errors.Is(err, createBooking.ErrInternal):
			h.logger.Error("POST /bookings - Store unavailable: user_id=%s, room_id=%d, error=%v", userID, req.RoomID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			if handlers.StatusFromError(err) == http.StatusBadRequest {
				h.logger.Warn("POST /bookings - Rejected: user_id=%s, room_id=%d, error=%v", userID, req.RoomID, err)
				handlers.RespondBadRequest(w, msgInvalidBookingWindow)
				return
			}
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, room_id=%d, error=%v", userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, room_id=%d",
		result.Booking.ID, userID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
