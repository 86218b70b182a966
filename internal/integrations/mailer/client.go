// Package mailer calls the HTTP email function that notifies the venue operator.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Client struct {
	url        string
	apiKey     string
	operator   string
	httpClient *http.Client
	log        Logger
}

// NewClient builds a client posting to url with apiKey as the bearer token.
// operator is the recipient address, empty lets the function decide.
func NewClient(url, apiKey, operator string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url:      url,
		apiKey:   apiKey,
		operator: operator,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *Client) Name() string { return "email" }

// Publish sends one event to the email function.
func (c *Client) Publish(ctx context.Context, event domain.BookingEvent) error {
	msg := Message{
		Template: templateFor(event.Type),
		To:       c.operator,
		Event:    event,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		c.log.Info("mailer: sent %s for booking_id=%s", msg.Template, event.BookingID)
		return nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var er ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return fmt.Errorf("%w: %s", ErrRejected, er.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// templateFor maps "booking.cancelled" to "booking_cancelled".
func templateFor(t domain.EventType) string {
	return strings.ReplaceAll(string(t), ".", "_")
}
