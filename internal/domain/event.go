package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated     EventType = "booking.created"
	EventBookingCancelled   EventType = "booking.cancelled"
	EventReceiptUploaded    EventType = "booking.receipt_uploaded"
	EventBookingConfirmed   EventType = "booking.confirmed"
	EventBookingRescheduled EventType = "booking.rescheduled"
)

// BookingEvent is the payload sent to the venue operator channel.
type BookingEvent struct {
	Type          EventType        `json:"type"`
	BookingID     uuid.UUID        `json:"bookingId"`
	RoomID        int64            `json:"roomId"`
	RoomName      string           `json:"roomName,omitempty"`
	UserID        uuid.UUID        `json:"userId"`
	StartTime     time.Time        `json:"startTime"`
	EndTime       time.Time        `json:"endTime"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	TotalCost     int              `json:"totalCost"`
	Fee           *CancellationFee `json:"fee,omitempty"`
	Reason        *string          `json:"reason,omitempty"`
	RelatedID     *uuid.UUID       `json:"relatedBookingId,omitempty"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// NewBookingEvent fills the common fields from b.
func NewBookingEvent(t EventType, b *Booking, roomName string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          t,
		BookingID:     b.ID,
		RoomID:        b.RoomID,
		RoomName:      roomName,
		UserID:        b.UserID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		PaymentMethod: b.PaymentMethod,
		TotalCost:     b.TotalCost,
		Fee:           b.CancellationFee,
		Reason:        b.CancellationReason,
		RelatedID:     b.RescheduledTo,
		OccurredAt:    at,
	}
}
