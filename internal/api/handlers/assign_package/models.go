package assign_package

import (
	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	bookingModels "github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
	assignPackage "github.com/Oso5408/ofcoz-booking/internal/usecase/assign_package"
)

// AssignPackageRequest credits a token or package balance
type AssignPackageRequest struct {
	Package string `json:"package" validate:"required,oneof=tokens br15_balance br30_balance dp20_balance"`
	Amount  int    `json:"amount" validate:"gt=0,lte=1000"`
}

func (r *AssignPackageRequest) ToUseCaseRequest(userID, adminID uuid.UUID) *assignPackage.Request {
	return &assignPackage.Request{
		UserID:  userID,
		AdminID: adminID,
		Package: domain.BalanceField(r.Package),
		Amount:  r.Amount,
	}
}

func FromUseCaseResponse(resp *assignPackage.Response) *bookingModels.BalanceResponse {
	return bookingModels.FromDomainBalance(resp.Balance)
}
