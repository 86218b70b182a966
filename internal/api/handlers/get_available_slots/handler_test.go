package get_available_slots

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/infra/storage/memory"
	getAvailableSlots "github.com/Oso5408/ofcoz-booking/internal/usecase/get_available_slots"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newRouter(t *testing.T) (*mux.Router, *memory.Store, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Hong_Kong")
	require.NoError(t, err)

	store := memory.NewStore()
	store.PutRoom(&domain.Room{ID: 1, Name: "Room A"})

	log := logger.NewWriter(io.Discard, "error")
	uc := getAvailableSlots.NewUseCase(store, store.Rooms(), domain.DefaultOperatingHours(loc), log).
		WithTimeProvider(fixedClock{time.Date(2026, 3, 1, 9, 0, 0, 0, loc)})

	h := NewHandler(uc, log)
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/rooms/{roomId}/start-options", h.HandleStartOptions)
	r.HandleFunc("/api/v1/rooms/{roomId}/end-options", h.HandleEndOptions)
	return r, store, loc
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestStartOptions_ExcludesBookedSlots(t *testing.T) {
	r, store, loc := newRouter(t)
	_, err := store.Create(context.Background(), &domain.Booking{
		RoomID:    1,
		StartTime: time.Date(2026, 3, 5, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 3, 5, 12, 0, 0, 0, loc),
		Status:    domain.StatusConfirmed,
	})
	require.NoError(t, err)

	rec := get(r, "/api/v1/rooms/1/start-options?date=2026-03-05")
	require.Equal(t, http.StatusOK, rec.Code)

	var body TimeOptionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2026-03-05", body.Date)
	require.NotEmpty(t, body.Options)
	assert.Equal(t, "12:00", body.Options[0])
	assert.NotContains(t, body.Options, "11:30")
	assert.False(t, body.Degraded)
}

func TestEndOptions(t *testing.T) {
	r, _, _ := newRouter(t)

	rec := get(r, "/api/v1/rooms/1/end-options?date=2026-03-05&start=20:30")
	require.Equal(t, http.StatusOK, rec.Code)

	var body TimeOptionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"21:30", "22:00"}, body.Options)
}

func TestOptions_BadRequests(t *testing.T) {
	r, _, _ := newRouter(t)

	tests := []struct {
		name     string
		url      string
		wantCode int
	}{
		{"room id not a number", "/api/v1/rooms/abc/start-options?date=2026-03-05", http.StatusBadRequest},
		{"missing date", "/api/v1/rooms/1/start-options", http.StatusBadRequest},
		{"bad date", "/api/v1/rooms/1/start-options?date=05-03-2026", http.StatusBadRequest},
		{"bad exclude id", "/api/v1/rooms/1/start-options?date=2026-03-05&excludeBookingId=7", http.StatusBadRequest},
		{"missing start", "/api/v1/rooms/1/end-options?date=2026-03-05", http.StatusBadRequest},
		{"bad start", "/api/v1/rooms/1/end-options?date=2026-03-05&start=25:00", http.StatusBadRequest},
		{"unknown room", "/api/v1/rooms/99/start-options?date=2026-03-05", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, get(r, tt.url).Code)
		})
	}
}
