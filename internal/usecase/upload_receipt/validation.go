package upload_receipt

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

func validateRequest(req *Request, maxBytes int64) error {
	if req.BookingID == uuid.Nil || req.UserID == uuid.Nil {
		return fmt.Errorf("%w: booking and user are required", ErrInvalidInput)
	}
	if req.File.Body == nil || req.File.Size <= 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if !domain.IsAllowedReceiptType(req.File.ContentType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, req.File.ContentType)
	}
	if maxBytes > 0 && req.File.Size > maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, req.File.Size, maxBytes)
	}
	return nil
}
