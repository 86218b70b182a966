package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	bookingModels "github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
	rescheduleBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Old *bookingModels.BookingResponse `json:"old"`
	New *bookingModels.BookingResponse `json:"new"`
}

func (r *RescheduleRequest) ToUseCaseRequest(bookingID, userID uuid.UUID) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Old: bookingModels.FromDomainBooking(resp.Old),
		New: bookingModels.FromDomainBooking(resp.New),
	}
}
