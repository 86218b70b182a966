package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	bookingModels "github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
	createBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID        int64     `json:"roomId" validate:"required,gt=0"`
	StartTime     time.Time `json:"startTime" validate:"required"` // RFC 3339
	EndTime       time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	PaymentMethod string    `json:"paymentMethod" validate:"required,oneof=token cash"`
	BalanceSource string    `json:"balanceSource,omitempty" validate:"omitempty,oneof=tokens br15_balance br30_balance dp20_balance"`
	Equipment     bool      `json:"equipment"`
	Notes         *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *bookingModels.BookingResponse `json:"booking"`
	Balance *bookingModels.BalanceResponse `json:"balance,omitempty"`
}

// ToUseCaseRequest converts the HTTP request for the authenticated user
func (r *CreateBookingRequest) ToUseCaseRequest(userID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		UserID:        userID,
		RoomID:        r.RoomID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		BalanceSource: domain.BalanceField(r.BalanceSource),
		Equipment:     r.Equipment,
		Notes:         r.Notes,
	}
}

func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: bookingModels.FromDomainBooking(resp.Booking),
		Balance: bookingModels.FromDomainBalance(resp.Balance),
	}
}
