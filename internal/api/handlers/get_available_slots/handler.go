package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
	getAvailableSlots "github.com/Oso5408/ofcoz-booking/internal/usecase/get_available_slots"
)

const (
	msgRoomNotFound = "room not found"
	msgInvalidInput = "invalid request parameters"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleStartOptions GET /api/v1/rooms/{roomId}/start-options
// Query params: date (required, YYYY-MM-DD), excludeBookingId (optional)
func (h *Handler) HandleStartOptions(w http.ResponseWriter, r *http.Request) {
	req, err := ToStartRequest(mux.Vars(r)["roomId"], r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/start-options - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.StartOptions(r.Context(), req)
	if err != nil {
		h.respondError(w, "start-options", req.RoomID, err)
		return
	}

	if result.Degraded {
		h.logger.Warn("GET /rooms/{id}/start-options - Degraded response: room_id=%d", req.RoomID)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleEndOptions GET /api/v1/rooms/{roomId}/end-options
// Query params: date (required), start (required, HH:MM), excludeBookingId (optional)
func (h *Handler) HandleEndOptions(w http.ResponseWriter, r *http.Request) {
	req, err := ToEndRequest(mux.Vars(r)["roomId"], r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/end-options - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.EndOptions(r.Context(), req)
	if err != nil {
		h.respondError(w, "end-options", req.RoomID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, roomID int64, err error) {
	switch {
	case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
		h.logger.Warn("GET /rooms/{id}/%s - Room not found: room_id=%d", route, roomID)
		handlers.RespondNotFound(w, msgRoomNotFound)

	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("GET /rooms/{id}/%s - Failed to compute options: room_id=%d, error=%v", route, roomID, err)
		handlers.RespondDomainError(w, err, msgInvalidInput)
	}
}
