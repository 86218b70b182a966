package assign_package

import (
	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Request struct {
	UserID  uuid.UUID
	AdminID uuid.UUID
	Package domain.BalanceField
	Amount  int
}

type Response struct {
	Balance *domain.UserBalance
}
