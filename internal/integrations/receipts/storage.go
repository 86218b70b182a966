// Package receipts stores payment receipts in a Supabase Storage bucket.
package receipts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var ErrUpload = errors.New("receipts: upload failed")

// ObjectStore is the part of the storage-go client used here.
type ObjectStore interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	GetPublicUrl(bucketID, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
}

type Logger interface {
	Info(format string, v ...interface{})
}

type Storage struct {
	store  ObjectStore
	bucket string
	now    func() time.Time
	log    Logger
}

// NewSupabase connects the Supabase client and uses its storage API.
func NewSupabase(url, serviceKey, bucket string, log Logger) (*Storage, error) {
	client, err := supabase.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("receipts: supabase client: %w", err)
	}
	return New(client.Storage, bucket, log), nil
}

func New(store ObjectStore, bucket string, log Logger) *Storage {
	return &Storage{store: store, bucket: bucket, now: time.Now, log: log}
}

// UploadReceipt writes file under receipts/<bookingID>/ and returns its public URL.
// storage-go has no context support, ctx is checked before the call only.
func (s *Storage) UploadReceipt(ctx context.Context, bookingID uuid.UUID, file domain.ReceiptFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := ObjectKey(bookingID, s.now(), file.Name)
	contentType := file.ContentType
	upsert := false

	if _, err := s.store.UploadFile(s.bucket, key, file.Body, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUpload, key, err)
	}

	url := s.store.GetPublicUrl(s.bucket, key).SignedURL
	s.log.Info("receipts: stored booking_id=%s key=%s size=%d", bookingID, key, file.Size)
	return url, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectKey is receipts/<bookingID>/<unix>-<sanitized name>.
func ObjectKey(bookingID uuid.UUID, at time.Time, name string) string {
	return fmt.Sprintf("receipts/%s/%d-%s", bookingID, at.Unix(), SanitizeName(name))
}

// SanitizeName keeps the base name and replaces anything outside [a-zA-Z0-9._-] with "_".
func SanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "receipt"
	}
	if len(base) > 100 {
		base = base[len(base)-100:]
	}
	return base
}
