package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	// ErrInvalidStatus is returned for unknown status strings
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// GetUserBookingsRequest lists one user's bookings
type GetUserBookingsRequest struct {
	UserID uuid.UUID `json:"userId"`
	Status *string   `json:"status,omitempty"`
}

// GetBookingsRequest is the admin range query
type GetBookingsRequest struct {
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	RoomID          *int64    `json:"roomId,omitempty"`
	Status          *string   `json:"status,omitempty"`
	IncludeInactive bool      `json:"includeInactive,omitempty"`
}

// ToDomainFilter converts the request into a store filter
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		RoomID:          r.RoomID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse is the public view of a booking
type BookingResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	RoomID        int64   `json:"roomId"`
	StartTime     string  `json:"startTime"` // RFC 3339
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	BalanceSource *string `json:"balanceSource,omitempty"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalCost     int     `json:"totalCost"`
	Equipment     bool    `json:"equipment"`
	ReceiptURL    *string `json:"receiptUrl,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CancelledAt        *string  `json:"cancelledAt,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledBy        *string  `json:"cancelledBy,omitempty"`
	CancellationFee    *string  `json:"cancellationFee,omitempty"`
	HoursBeforeStart   *float64 `json:"hoursBeforeStart,omitempty"`
	RescheduledTo      *string  `json:"rescheduledTo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse wraps a list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BalanceResponse is a user's balances
type BalanceResponse struct {
	UserID          string  `json:"userId"`
	Tokens          int     `json:"tokens"`
	TokenValidUntil *string `json:"tokenValidUntil,omitempty"`
	BR15Balance     int     `json:"br15Balance"`
	BR30Balance     int     `json:"br30Balance"`
	DP20Balance     int     `json:"dp20Balance"`
	DP20Expiry      *string `json:"dp20Expiry,omitempty"`
}

// CancellationStatsResponse is the current month's cancellation summary
type CancellationStatsResponse struct {
	Month                      string `json:"month"` // "2025-06"
	Total                      int    `json:"total"`
	FreeUsed                   int    `json:"freeUsed"`
	FreeUsedEarly              int    `json:"freeUsedEarly"`
	FreeUsedLate               int    `json:"freeUsedLate"`
	Charged                    int    `json:"charged"`
	FreeCancellationsRemaining int    `json:"freeCancellationsRemaining"`
}

// Conversions

// FromDomainBooking converts a domain booking into its DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID.String(),
		UserID:             b.UserID.String(),
		RoomID:             b.RoomID,
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime.Format(time.RFC3339),
		Status:             string(b.Status),
		PaymentMethod:      string(b.PaymentMethod),
		PaymentStatus:      string(b.PaymentStatus),
		TotalCost:          b.TotalCost,
		Equipment:          b.Equipment,
		ReceiptURL:         b.ReceiptURL,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		HoursBeforeStart:   b.HoursBeforeStart,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.BalanceSource != "" {
		s := string(b.BalanceSource)
		resp.BalanceSource = &s
	}
	resp.CancelledAt = formatTime(b.CancelledAt)
	if b.CancelledBy != nil {
		s := string(*b.CancelledBy)
		resp.CancelledBy = &s
	}
	if b.CancellationFee != nil {
		s := string(*b.CancellationFee)
		resp.CancellationFee = &s
	}
	if b.RescheduledTo != nil {
		s := b.RescheduledTo.String()
		resp.RescheduledTo = &s
	}

	return resp
}

// FromDomainBookingList converts a list of domain bookings
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// FromDomainBalance converts a user balance
func FromDomainBalance(b *domain.UserBalance) *BalanceResponse {
	if b == nil {
		return nil
	}
	return &BalanceResponse{
		UserID:          b.UserID.String(),
		Tokens:          b.Tokens,
		TokenValidUntil: formatTime(b.TokenValidUntil),
		BR15Balance:     b.BR15Balance,
		BR30Balance:     b.BR30Balance,
		DP20Balance:     b.DP20Balance,
		DP20Expiry:      formatTime(b.DP20Expiry),
	}
}

// FromDomainStats converts cancellation stats
func FromDomainStats(s domain.CancellationStats) *CancellationStatsResponse {
	return &CancellationStatsResponse{
		Month:                      s.MonthStart.Format("2006-01"),
		Total:                      s.Total,
		FreeUsed:                   s.FreeUsed,
		FreeUsedEarly:              s.FreeUsedEarly,
		FreeUsedLate:               s.FreeUsedLate,
		Charged:                    s.Charged,
		FreeCancellationsRemaining: s.FreeCancellationsRemaining,
	}
}

// ToDomainBookingStatus parses a status string
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusToBeConfirmed,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusRescheduled:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
