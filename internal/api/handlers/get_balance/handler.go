package get_balance

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	"github.com/Oso5408/ofcoz-booking/internal/service/bookings"
	"github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
)

type BalanceService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*models.BalanceResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Handler struct {
	service BalanceService
	logger  Logger
}

func NewHandler(service BalanceService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/me/balance
// A user without a balance row gets zero balances.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing user id")
		return
	}

	balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrBalanceNotFound) {
			handlers.RespondJSON(w, http.StatusOK, &models.BalanceResponse{UserID: userID.String()})
			return
		}
		h.logger.Error("GET /me/balance - Failed to get balance: user_id=%s, error=%v", userID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, balance)
}
