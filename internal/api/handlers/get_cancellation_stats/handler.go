package get_cancellation_stats

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
)

type PolicyService interface {
	GetUserMonthlyCancellations(ctx context.Context, userID uuid.UUID) (domain.CancellationStats, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Handler struct {
	policy PolicyService
	logger Logger
}

func NewHandler(policy PolicyService, logger Logger) *Handler {
	return &Handler{policy: policy, logger: logger}
}

// Handle GET /api/v1/me/cancellation-stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing user id")
		return
	}

	stats, err := h.policy.GetUserMonthlyCancellations(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /me/cancellation-stats - user_id=%s, error=%v", userID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainStats(stats))
}
