package review_booking

import (
	"github.com/google/uuid"

	bookingModels "github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
	reviewBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/review_booking"
)

// ReviewBookingRequest HTTP request model
type ReviewBookingRequest struct {
	Action string  `json:"action" validate:"required,oneof=confirm cancel"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ReviewBookingResponse HTTP response model
type ReviewBookingResponse struct {
	Booking  *bookingModels.BookingResponse `json:"booking"`
	Refunded int                            `json:"refunded"`
}

func (r *ReviewBookingRequest) ToUseCaseRequest(bookingID, adminID uuid.UUID) *reviewBooking.Request {
	return &reviewBooking.Request{
		BookingID: bookingID,
		AdminID:   adminID,
		Action:    reviewBooking.Action(r.Action),
		Reason:    r.Reason,
	}
}

func FromUseCaseResponse(resp *reviewBooking.Response) *ReviewBookingResponse {
	return &ReviewBookingResponse{
		Booking:  bookingModels.FromDomainBooking(resp.Booking),
		Refunded: resp.Refunded,
	}
}
