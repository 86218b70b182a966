package check_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID    int64  `json:"roomId"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type Handler struct {
	checker ConflictChecker
	logger  Logger
}

func NewHandler(checker ConflictChecker, logger Logger) *Handler {
	return &Handler{checker: checker, logger: logger}
}

// Handle GET /api/v1/rooms/{roomId}/availability?start=RFC3339&end=RFC3339[&excludeBookingId=]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, "invalid room id")
		return
	}

	q := r.URL.Query()
	start, err1 := time.Parse(time.RFC3339, q.Get("start"))
	end, err2 := time.Parse(time.RFC3339, q.Get("end"))
	if err1 != nil || err2 != nil {
		handlers.RespondBadRequest(w, "start and end must be RFC 3339 timestamps")
		return
	}

	var exclude *uuid.UUID
	if s := q.Get("excludeBookingId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			handlers.RespondBadRequest(w, "invalid excludeBookingId")
			return
		}
		exclude = &id
	}

	available, err := h.checker.CheckAvailability(r.Context(), roomID, start, end, exclude)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - room_id=%d, error=%v", roomID, err)
		handlers.RespondDomainError(w, err, "end must be after start")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		RoomID:    roomID,
		Start:     start.Format(time.RFC3339),
		End:       end.Format(time.RFC3339),
		Available: available,
	})
}
