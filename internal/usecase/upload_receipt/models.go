package upload_receipt

import (
	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Request struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	File      domain.ReceiptFile
}

type Response struct {
	Booking *domain.Booking
}
