package assign_package

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	assignPackage "github.com/Oso5408/ofcoz-booking/internal/usecase/assign_package"
)

const (
	msgInvalidUserID      = "invalid user id"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user id"
)

type Handler struct {
	useCase AssignPackageUseCase
	logger  Logger
}

func NewHandler(useCase AssignPackageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/users/{userId}/packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("POST /admin/users/{id}/packages - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AssignPackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/users/{id}/packages - Invalid request body: user_id=%s, error=%v", userID, err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, adminID))
	if err != nil {
		if errors.Is(err, assignPackage.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		h.logger.Error("POST /admin/users/{id}/packages - Failed to assign package: user_id=%s, error=%v", userID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("POST /admin/users/{id}/packages - Package assigned: user_id=%s, admin_id=%s, package=%s, amount=%d",
		userID, adminID, req.Package, req.Amount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
