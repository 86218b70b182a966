package receipts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	args := m.Called(bucketID, relativePath, data, fileOptions)
	return storage_go.FileUploadResponse{}, args.Error(0)
}

func (m *mockStore) GetPublicUrl(bucketID, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse {
	args := m.Called(bucketID, filePath)
	return storage_go.SignedUrlResponse{SignedURL: args.String(0)}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"receipt.pdf", "receipt.pdf"},
		{"my receipt (1).png", "my_receipt_1_.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\cat\scan.jpg`, "scan.jpg"},
		{"收據.jpg", "jpg"},
		{"", "receipt"},
		{"...", "receipt"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestUploadReceipt(t *testing.T) {
	store := new(mockStore)
	s := New(store, "receipts-bucket", logger.NewWriter(io.Discard, "error"))
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }

	id := uuid.New()
	key := ObjectKey(id, at, "scan 1.png")
	require.Equal(t, "receipts/"+id.String()+"/"+"1772366400-scan_1.png", key)

	store.On("UploadFile", "receipts-bucket", key, mock.Anything, mock.MatchedBy(func(opts []storage_go.FileOptions) bool {
		return len(opts) == 1 && *opts[0].ContentType == "image/png" && !*opts[0].Upsert
	})).Return(nil).Once()
	store.On("GetPublicUrl", "receipts-bucket", key).Return("https://cdn.example/" + key).Once()

	url, err := s.UploadReceipt(context.Background(), id, domain.ReceiptFile{
		Name:        "scan 1.png",
		ContentType: "image/png",
		Size:        3,
		Body:        bytes.NewReader([]byte("png")),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/"+key, url)
	store.AssertExpectations(t)
}

func TestUploadReceipt_Failure(t *testing.T) {
	store := new(mockStore)
	s := New(store, "b", logger.NewWriter(io.Discard, "error"))
	store.On("UploadFile", "b", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("403"))

	_, err := s.UploadReceipt(context.Background(), uuid.New(), domain.ReceiptFile{
		Name: "a.pdf", ContentType: "application/pdf", Body: bytes.NewReader(nil),
	})
	assert.ErrorIs(t, err, ErrUpload)
	store.AssertNotCalled(t, "GetPublicUrl", mock.Anything, mock.Anything)
}

func TestUploadReceipt_CancelledContext(t *testing.T) {
	store := new(mockStore)
	s := New(store, "b", logger.NewWriter(io.Discard, "error"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.UploadReceipt(ctx, uuid.New(), domain.ReceiptFile{Name: "a.pdf", Body: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, context.Canceled)
}
