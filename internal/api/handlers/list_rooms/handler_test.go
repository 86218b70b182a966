package list_rooms

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_room"
	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/infra/storage/memory"
	"github.com/Oso5408/ofcoz-booking/internal/service/rooms"
	"github.com/Oso5408/ofcoz-booking/internal/service/rooms/models"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

func newRouter() *mux.Router {
	store := memory.NewStore()
	store.PutRoom(&domain.Room{
		ID: 1, Name: "Room A", Capacity: 6,
		Prices: domain.RoomPrices{TokenHourly: 1, CashHourly: decimal.RequireFromString("120.5")},
	})
	store.PutRoom(&domain.Room{ID: 2, Name: "Storage", Hidden: true})

	log := logger.NewWriter(io.Discard, "error")
	svc := rooms.NewService(store.Rooms(), log)

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/rooms", NewHandler(svc, log).Handle)
	r.HandleFunc("/api/v1/rooms/{roomId}", get_room.NewHandler(svc, log).Handle)
	return r
}

func TestListRooms_SkipsHidden(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.RoomListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Rooms, 1)
	assert.Equal(t, "Room A", body.Rooms[0].Name)
	assert.Equal(t, "120.50", body.Rooms[0].Prices.CashHourly)
}

func TestGetRoom(t *testing.T) {
	tests := []struct {
		path     string
		wantCode int
	}{
		{"/api/v1/rooms/1", http.StatusOK},
		{"/api/v1/rooms/2", http.StatusNotFound},
		{"/api/v1/rooms/99", http.StatusNotFound},
		{"/api/v1/rooms/one", http.StatusBadRequest},
	}
	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
