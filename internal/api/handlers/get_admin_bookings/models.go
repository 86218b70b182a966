package get_admin_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
)

// ToServiceRequest builds the admin range query from query parameters.
// from and to accept RFC 3339 or YYYY-MM-DD in the venue timezone; a date
// in "to" is inclusive.
func ToServiceRequest(q url.Values, loc *time.Location) (*models.GetBookingsRequest, error) {
	from, err := parseBound(q.Get("from"), loc, false)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := parseBound(q.Get("to"), loc, true)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	req := &models.GetBookingsRequest{From: from, To: to}

	if s := q.Get("roomId"); s != "" {
		roomID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("roomId: %w", err)
		}
		req.RoomID = &roomID
	}

	if s := q.Get("status"); s != "" {
		req.Status = &s
	}

	if s := q.Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseBound(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1)
	}
	return day, nil
}
