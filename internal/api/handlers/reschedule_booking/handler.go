package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	rescheduleBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "invalid booking id"
	msgInvalidRequestBody  = "invalid request body"
	msgNotFound            = "booking not found"
	msgForbidden           = "access denied"
	msgNotReschedulable    = "booking can no longer be rescheduled"
	msgSlotNotAvailable    = "the selected time slot is no longer available"
	msgInProgress          = "a change to this booking is already being processed"
	msgInsufficientBalance = "your balance cannot cover the new time"
	msgInvalidWindow       = "the requested time is not bookable"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing user id")
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, rescheduleBooking.ErrNotOwner):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			handlers.RespondConflict(w, msgNotReschedulable)
		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, rescheduleBooking.ErrInProgress):
			handlers.RespondConflict(w, msgInProgress)
		case errors.Is(err, rescheduleBooking.ErrInsufficientBalance):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInsufficientBalance)
		default:
			if handlers.StatusFromError(err) == http.StatusBadRequest {
				handlers.RespondBadRequest(w, msgInvalidWindow)
				return
			}
			h.logger.Error("POST /bookings/{id}/reschedule - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Rescheduled: old=%s, new=%s", result.Old.ID, result.New.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
