package models

import (
	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// RoomResponse is the public view of a room
type RoomResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Capacity       int             `json:"capacity"`
	Images         []ImageResponse `json:"images"`
	Prices         PricesResponse  `json:"prices"`
	BookingOptions []string        `json:"bookingOptions"`
}

type ImageResponse struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// PricesResponse carries cash prices as decimal strings ("120.50")
type PricesResponse struct {
	TokenHourly int    `json:"tokenHourly"`
	CashHourly  string `json:"cashHourly"`
	CashDaily   string `json:"cashDaily"`
	CashMonthly string `json:"cashMonthly"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FromDomainRoom converts a room, keeping visible images only
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	resp := &RoomResponse{
		ID:       r.ID,
		Name:     r.Name,
		Capacity: r.Capacity,
		Images:   make([]ImageResponse, 0, len(r.Images)),
		Prices: PricesResponse{
			TokenHourly: r.Prices.TokenHourly,
			CashHourly:  r.Prices.CashHourly.StringFixed(2),
			CashDaily:   r.Prices.CashDaily.StringFixed(2),
			CashMonthly: r.Prices.CashMonthly.StringFixed(2),
		},
		BookingOptions: make([]string, 0, len(r.BookingOptions)),
	}

	for _, img := range r.VisibleImages() {
		resp.Images = append(resp.Images, ImageResponse{URL: img.URL, Position: img.Position})
	}
	for _, opt := range r.BookingOptions {
		resp.BookingOptions = append(resp.BookingOptions, string(opt))
	}

	return resp
}

func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{Rooms: make([]RoomResponse, 0, len(rooms))}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, *FromDomainRoom(r))
	}
	return resp
}
