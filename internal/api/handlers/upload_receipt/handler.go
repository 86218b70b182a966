package upload_receipt

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Oso5408/ofcoz-booking/internal/api/handlers"
	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	"github.com/Oso5408/ofcoz-booking/internal/domain"
	bookingModels "github.com/Oso5408/ofcoz-booking/internal/service/bookings/models"
	uploadReceipt "github.com/Oso5408/ofcoz-booking/internal/usecase/upload_receipt"
)

const (
	formField           = "file"
	multipartOverhead   = 1 << 20
	msgInvalidBookingID = "invalid booking id"
	msgMissingFile      = "multipart field \"file\" is required"
	msgTooLarge         = "file is too large"
	msgUnsupportedType  = "receipt must be a JPEG, PNG or PDF file"
	msgNotFound         = "booking not found"
	msgForbidden        = "access denied"
	msgNotAccepted      = "this booking does not accept a receipt"
)

type UploadReceiptUseCase interface {
	Execute(ctx context.Context, req *uploadReceipt.Request) (*uploadReceipt.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	useCase  UploadReceiptUseCase
	maxBytes int64
	logger   Logger
}

func NewHandler(useCase UploadReceiptUseCase, maxBytes int64, logger Logger) *Handler {
	return &Handler{useCase: useCase, maxBytes: maxBytes, logger: logger}
}

// Handle POST /api/v1/bookings/{bookingId}/receipt (multipart "file")
// The content type is sniffed from the file, the client's header is ignored.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing user id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formField)
	if err != nil {
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, _ := io.ReadFull(file, sniff)
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.logger.Error("POST /bookings/{id}/receipt - Failed to rewind upload: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &uploadReceipt.Request{
		BookingID: bookingID,
		UserID:    userID,
		File: domain.ReceiptFile{
			Name:        header.Filename,
			ContentType: http.DetectContentType(sniff[:n]),
			Size:        header.Size,
			Body:        file,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, uploadReceipt.ErrUnsupportedType):
			handlers.RespondError(w, http.StatusUnsupportedMediaType, msgUnsupportedType)
		case errors.Is(err, uploadReceipt.ErrFileTooLarge):
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		case errors.Is(err, uploadReceipt.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, uploadReceipt.ErrNotOwner):
			h.logger.Warn("POST /bookings/{id}/receipt - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, uploadReceipt.ErrReceiptNotAccepted):
			handlers.RespondConflict(w, msgNotAccepted)
		default:
			h.logger.Error("POST /bookings/{id}/receipt - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgMissingFile)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/receipt - Receipt stored: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, bookingModels.FromDomainBooking(result.Booking))
}
