package upload_receipt

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/infra/storage/memory"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadReceipt(ctx context.Context, bookingID uuid.UUID, file domain.ReceiptFile) (string, error) {
	args := m.Called(ctx, bookingID, file)
	return args.String(0), args.Error(1)
}

type countingNotifier struct{ events []domain.BookingEvent }

func (n *countingNotifier) Notify(_ context.Context, e domain.BookingEvent) {
	n.events = append(n.events, e)
}

func receipt(contentType string, size int64) domain.ReceiptFile {
	return domain.ReceiptFile{
		Name:        "fps.png",
		ContentType: contentType,
		Size:        size,
		Body:        strings.NewReader("x"),
	}
}

func setup(t *testing.T) (*UseCase, *memory.Store, *mockStorage, *countingNotifier) {
	t.Helper()
	store := memory.NewStore()
	store.PutRoom(&domain.Room{ID: 1, Name: "Room A"})
	storage := new(mockStorage)
	notifier := &countingNotifier{}
	uc := NewUseCase(store, store.Rooms(), storage, notifier, 5<<20, logger.NewWriter(io.Discard, "error"))
	return uc, store, storage, notifier
}

func seed(store *memory.Store, user uuid.UUID, method domain.PaymentMethod, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{ID: uuid.New(), UserID: user, RoomID: 1, PaymentMethod: method, Status: status}
	store.PutBooking(b)
	return b
}

func TestExecute_MovesCashBookingToReview(t *testing.T) {
	uc, store, storage, notifier := setup(t)
	user := uuid.New()
	b := seed(store, user, domain.PaymentCash, domain.StatusPending)
	storage.On("UploadReceipt", mock.Anything, b.ID, mock.Anything).Return("https://cdn/receipts/1.png", nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, UserID: user, File: receipt("image/png", 1024)})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusToBeConfirmed, resp.Booking.Status)
	require.NotNil(t, resp.Booking.ReceiptURL)
	assert.Equal(t, "https://cdn/receipts/1.png", *resp.Booking.ReceiptURL)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventReceiptUploaded, notifier.events[0].Type)
	storage.AssertExpectations(t)
}

func TestExecute_ReuploadReplacesURL(t *testing.T) {
	uc, store, storage, _ := setup(t)
	user := uuid.New()
	b := seed(store, user, domain.PaymentCash, domain.StatusToBeConfirmed)
	storage.On("UploadReceipt", mock.Anything, b.ID, mock.Anything).Return("https://cdn/receipts/2.pdf", nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, UserID: user, File: receipt("application/pdf", 2048)})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/receipts/2.pdf", *resp.Booking.ReceiptURL)
}

func TestExecute_Rejections(t *testing.T) {
	uc, store, storage, notifier := setup(t)
	user := uuid.New()
	cash := seed(store, user, domain.PaymentCash, domain.StatusPending)
	token := seed(store, user, domain.PaymentToken, domain.StatusConfirmed)
	confirmed := seed(store, user, domain.PaymentCash, domain.StatusConfirmed)

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"unsupported type", &Request{BookingID: cash.ID, UserID: user, File: receipt("image/gif", 10)}, ErrUnsupportedType},
		{"too large", &Request{BookingID: cash.ID, UserID: user, File: receipt("image/png", 6<<20)}, ErrFileTooLarge},
		{"empty", &Request{BookingID: cash.ID, UserID: user, File: receipt("image/png", 0)}, ErrInvalidInput},
		{"unknown booking", &Request{BookingID: uuid.New(), UserID: user, File: receipt("image/png", 10)}, ErrBookingNotFound},
		{"other user", &Request{BookingID: cash.ID, UserID: uuid.New(), File: receipt("image/png", 10)}, ErrNotOwner},
		{"token booking", &Request{BookingID: token.ID, UserID: user, File: receipt("image/png", 10)}, ErrReceiptNotAccepted},
		{"already confirmed", &Request{BookingID: confirmed.ID, UserID: user, File: receipt("image/png", 10)}, ErrReceiptNotAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	storage.AssertNotCalled(t, "UploadReceipt", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.events)
}

func TestExecute_StorageFailureLeavesBookingUntouched(t *testing.T) {
	uc, store, storage, _ := setup(t)
	user := uuid.New()
	b := seed(store, user, domain.PaymentCash, domain.StatusPending)
	storage.On("UploadReceipt", mock.Anything, b.ID, mock.Anything).Return("", errors.New("bucket not found"))

	_, err := uc.Execute(context.Background(), &Request{BookingID: b.ID, UserID: user, File: receipt("image/jpeg", 10)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, domain.ErrTransient)

	stored, err := store.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Nil(t, stored.ReceiptURL)
}
