package cancel_booking

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
	cancelBooking "github.com/Oso5408/ofcoz-booking/internal/usecase/cancel_booking"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cancelBooking.Response)
	return resp, args.Error(1)
}

func serve(uc *mockUseCase, bookingID string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(uc, logger.NewWriter(io.Discard, "error")).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/cancel", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), userID, false))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ChargedCancellation(t *testing.T) {
	uc := new(mockUseCase)
	bookingID, userID := uuid.New(), uuid.New()
	fee := domain.FeeCharged

	uc.On("Execute", mock.Anything, &cancelBooking.Request{BookingID: bookingID, UserID: userID}).
		Return(&cancelBooking.Response{
			Booking:       &domain.Booking{ID: bookingID, UserID: userID, Status: domain.StatusCancelled, CancellationFee: &fee},
			Refunded:      3,
			TokenDeducted: true,
			Reason:        domain.ReasonLateQuotaExhausted,
			Stats:         domain.CancellationStats{Total: 2, FreeUsed: 1, FreeUsedLate: 1, Charged: 1, FreeCancellationsRemaining: 2},
		}, nil).Once()

	rec := serve(uc, bookingID.String(), userID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body CancelBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.TokenDeducted)
	assert.Equal(t, 3, body.Refunded)
	assert.Equal(t, "late_quota_exhausted", body.Reason)
	assert.Equal(t, "charged", *body.Booking.CancellationFee)
	assert.Equal(t, 2, body.Stats.FreeCancellationsRemaining)
	uc.AssertExpectations(t)
}

func TestHandle_PassesReason(t *testing.T) {
	uc := new(mockUseCase)
	fee := domain.FeeFree
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *cancelBooking.Request) bool {
		return r.Reason != nil && *r.Reason == "sick cat"
	})).Return(&cancelBooking.Response{Booking: &domain.Booking{CancellationFee: &fee}}, nil).Once()

	rec := serve(uc, uuid.NewString(), uuid.New(), `{"cancellationReason":"sick cat"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
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
		{name: "bad id", bookingID: "42", wantCode: http.StatusBadRequest},
		{name: "reason too long", bookingID: uuid.NewString(), body: `{"cancellationReason":"` + strings.Repeat("x", 501) + `"}`, wantCode: http.StatusBadRequest},
		{name: "not found", bookingID: uuid.NewString(), ucErr: cancelBooking.ErrBookingNotFound, wantCode: http.StatusNotFound},
		{name: "not owner", bookingID: uuid.NewString(), ucErr: cancelBooking.ErrNotOwner, wantCode: http.StatusForbidden},
		{name: "already cancelled", bookingID: uuid.NewString(), ucErr: cancelBooking.ErrAlreadyCancelled, wantCode: http.StatusConflict},
		{name: "finished", bookingID: uuid.NewString(), ucErr: cancelBooking.ErrBookingFinished, wantCode: http.StatusBadRequest},
		{name: "store down", bookingID: uuid.NewString(), ucErr: cancelBooking.ErrInternal, wantCode: http.StatusServiceUnavailable},
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
