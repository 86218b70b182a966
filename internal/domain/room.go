package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

type RoomImage struct {
	URL      string
	Position int
	Visible  bool
}

// RoomPrices is the price table shown to customers. Token prices are whole tokens per hour.
type RoomPrices struct {
	TokenHourly int
	CashHourly  decimal.Decimal
	CashDaily   decimal.Decimal
	CashMonthly decimal.Decimal
}

type Room struct {
	ID             int64
	Name           string
	Capacity       int
	Images         []RoomImage
	Prices         RoomPrices
	BookingOptions []PaymentMethod
	Hidden         bool
}

// Accepts reports whether the room can be paid for with method.
// A room without explicit booking options accepts every method.
func (r *Room) Accepts(method PaymentMethod) bool {
	if len(r.BookingOptions) == 0 {
		return true
	}
	for _, m := range r.BookingOptions {
		if m == method {
			return true
		}
	}
	return false
}

// VisibleImages returns images flagged visible, ordered by position.
func (r *Room) VisibleImages() []RoomImage {
	out := make([]RoomImage, 0, len(r.Images))
	for _, img := range r.Images {
		if img.Visible {
			out = append(out, img)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
