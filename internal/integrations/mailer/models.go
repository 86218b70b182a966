package mailer

import "github.com/Oso5408/ofcoz-booking/internal/domain"

// Message is the body posted to the email function. Template selection and
// rendering happen on the function side.
type Message struct {
	Template string              `json:"template"`
	To       string              `json:"to,omitempty"`
	Event    domain.BookingEvent `json:"event"`
}

// ErrorResponse is the error body returned by the email function.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
