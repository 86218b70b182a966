package cancel_booking

import (
	"github.com/google/uuid"

	bookingModels "github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
	cancelBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model, the body is optional
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking            *bookingModels.BookingResponse           `json:"booking"`
	Refunded           int                                      `json:"refunded"`
	TokenDeducted      bool                                     `json:"tokenDeducted"`
	InsufficientTokens bool                                     `json:"insufficientTokens"`
	Reason             string                                   `json:"reason"`
	Stats              *bookingModels.CancellationStatsResponse `json:"stats"`
}

func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, userID uuid.UUID) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Reason:    r.CancellationReason,
	}
}

func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:            bookingModels.FromDomainBooking(resp.Booking),
		Refunded:           resp.Refunded,
		TokenDeducted:      resp.TokenDeducted,
		InsufficientTokens: resp.InsufficientTokens,
		Reason:             string(resp.Reason),
		Stats:              bookingModels.FromDomainStats(resp.Stats),
	}
}
