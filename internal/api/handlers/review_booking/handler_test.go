package review_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	"github.com/Oso5408/ofcoz-booking/internal/domain"
	reviewBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/review_booking"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *reviewBooking.Request) (*reviewBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*reviewBooking.Response)
	return resp, args.Error(1)
}

func serve(uc *mockUseCase, bookingID string, adminID uuid.UUID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/bookings/{bookingId}/review", NewHandler(uc, logger.NewWriter(io.Discard, "error")).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+bookingID+"/review", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), adminID, true))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Confirm(t *testing.T) {
	uc := new(mockUseCase)
	bookingID, adminID := uuid.New(), uuid.New()

	uc.On("Execute", mock.Anything, &reviewBooking.Request{BookingID: bookingID, AdminID: adminID, Action: reviewBooking.ActionConfirm}).
		Return(&reviewBooking.Response{
			Booking: &domain.Booking{ID: bookingID, Status: domain.StatusConfirmed, PaymentStatus: domain.PaymentPaid},
		}, nil).Once()

	rec := serve(uc, bookingID.String(), adminID, `{"action":"confirm"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body ReviewBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "confirmed", body.Booking.Status)
	assert.Equal(t, "paid", body.Booking.PaymentStatus)
	assert.Zero(t, body.Refunded)
	uc.AssertExpectations(t)
}

func TestHandle_CancelReportsRefund(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *reviewBooking.Request) bool {
		return r.Action == reviewBooking.ActionCancel && r.Reason != nil && *r.Reason == "room closed"
	})).Return(&reviewBooking.Response{
		Booking:  &domain.Booking{Status: domain.StatusCancelled, PaymentStatus: domain.PaymentRefunded},
		Refunded: 2,
	}, nil).Once()

	rec := serve(uc, uuid.NewString(), uuid.New(), `{"action":"cancel","reason":"room closed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body ReviewBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Refunded)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		body      string
		ucErr     error
		wantCode  int
	}{
		{name: "bad id", bookingID: "7", body: `{"action":"confirm"}`, wantCode: http.StatusBadRequest},
		{name: "missing action", bookingID: uuid.NewString(), body: `{}`, wantCode: http.StatusBadRequest},
		{name: "unknown action", bookingID: uuid.NewString(), body: `{"action":"approve"}`, wantCode: http.StatusBadRequest},
		{name: "not found", bookingID: uuid.NewString(), body: `{"action":"confirm"}`, ucErr: reviewBooking.ErrBookingNotFound, wantCode: http.StatusNotFound},
		{name: "wrong status", bookingID: uuid.NewString(), body: `{"action":"confirm"}`, ucErr: reviewBooking.ErrInvalidTransition, wantCode: http.StatusConflict},
		{name: "store down", bookingID: uuid.NewString(), body: `{"action":"cancel"}`, ucErr: reviewBooking.ErrInternal, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr).Once()
			}
			rec := serve(uc, tt.bookingID, uuid.New(), tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
