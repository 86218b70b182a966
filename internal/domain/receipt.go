package domain

import "io"

// ReceiptFile is an uploaded payment receipt.
type ReceiptFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AllowedReceiptTypes are the accepted receipt content types.
var AllowedReceiptTypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
}

func IsAllowedReceiptType(contentType string) bool {
	for _, t := range AllowedReceiptTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
