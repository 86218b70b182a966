package get_available_slots

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	getAvailableSlots "github.com/Oso5408/ofcoz-booking/internal/usecase/get_available_slots"
	"github.com/Oso5408/ofcoz-booking/pkg/types"
)

var (
	errInvalidRoomID    = errors.New("invalid room id")
	errMissingDate      = errors.New("date is required")
	errInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	errMissingStart     = errors.New("start is required")
	errInvalidStart     = errors.New("invalid start, expected HH:MM")
	errInvalidExcludeID = errors.New("invalid excludeBookingId")
)

// TimeOptionsResponse HTTP response model
type TimeOptionsResponse struct {
	RoomID   int64    `json:"roomId"`
	Date     string   `json:"date"`
	Options  []string `json:"options"`
	Degraded bool     `json:"degraded,omitempty"`
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) *TimeOptionsResponse {
	options := make([]string, len(resp.Options))
	for i, o := range resp.Options {
		options[i] = o.String()
	}
	return &TimeOptionsResponse{
		RoomID:   resp.RoomID,
		Date:     resp.Date.Format(domain.DateFormat),
		Options:  options,
		Degraded: resp.Degraded,
	}
}

// ToStartRequest builds a use case request from the path room id and query parameters
func ToStartRequest(roomIDStr string, q url.Values) (*getAvailableSlots.StartRequest, error) {
	roomID, date, exclude, err := parseCommon(roomIDStr, q)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.StartRequest{RoomID: roomID, Date: date, ExcludeBookingID: exclude}, nil
}

func ToEndRequest(roomIDStr string, q url.Values) (*getAvailableSlots.EndRequest, error) {
	roomID, date, exclude, err := parseCommon(roomIDStr, q)
	if err != nil {
		return nil, err
	}

	startStr := q.Get("start")
	if startStr == "" {
		return nil, errMissingStart
	}
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return nil, errInvalidStart
	}

	return &getAvailableSlots.EndRequest{RoomID: roomID, Date: date, StartTime: start, ExcludeBookingID: exclude}, nil
}

func parseCommon(roomIDStr string, q url.Values) (int64, time.Time, *uuid.UUID, error) {
	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil || roomID <= 0 {
		return 0, time.Time{}, nil, errInvalidRoomID
	}

	dateStr := q.Get("date")
	if dateStr == "" {
		return 0, time.Time{}, nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return 0, time.Time{}, nil, errInvalidDate
	}

	var exclude *uuid.UUID
	if s := q.Get("excludeBookingId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return 0, time.Time{}, nil, errInvalidExcludeID
		}
		exclude = &id
	}

	return roomID, date, exclude, nil
}
