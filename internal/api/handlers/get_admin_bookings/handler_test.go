package get_admin_bookings

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/infra/storage/memory"
	"github.com/Oso5408/ofcoz-booking/internal/service/bookings"
	"github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

func TestToServiceRequest_DateBounds(t *testing.T) {
	loc := time.FixedZone("HKT", 8*3600)
	req, err := ToServiceRequest(url.Values{"from": {"2026-03-01"}, "to": {"2026-03-07"}, "roomId": {"2"}}, loc)
	require.NoError(t, err)

	assert.True(t, req.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc)))
	assert.True(t, req.To.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, loc)))
	require.NotNil(t, req.RoomID)
	assert.Equal(t, int64(2), *req.RoomID)
}

func TestHandle(t *testing.T) {
	loc := time.FixedZone("HKT", 8*3600)
	store := memory.NewStore()
	for i, s := range []domain.BookingStatus{domain.StatusToBeConfirmed, domain.StatusConfirmed, domain.StatusCancelled} {
		start := time.Date(2026, 3, 2+i, 10, 0, 0, 0, loc)
		store.PutBooking(&domain.Booking{ID: uuid.New(), RoomID: 1, UserID: uuid.New(), Status: s, StartTime: start, EndTime: start.Add(time.Hour)})
	}

	log := logger.NewWriter(io.Discard, "error")
	h := NewHandler(bookings.NewService(store, store, log), loc, log)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
	}{
		{"active in range", "from=2026-03-01&to=2026-03-07", http.StatusOK, 2},
		{"including inactive", "from=2026-03-01&to=2026-03-07&includeInactive=true", http.StatusOK, 3},
		{"awaiting review", "from=2026-03-01&to=2026-03-07&status=to_be_confirmed", http.StatusOK, 1},
		{"single day", "from=2026-03-03&to=2026-03-03", http.StatusOK, 1},
		{"missing to", "from=2026-03-01", http.StatusBadRequest, 0},
		{"reversed", "from=2026-03-07&to=2026-03-01", http.StatusBadRequest, 0},
		{"bad status", "from=2026-03-01&to=2026-03-07&status=gone", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings?"+tt.query, nil))

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				var body models.BookingListResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Len(t, body.Bookings, tt.wantCount)
			}
		})
	}
}
