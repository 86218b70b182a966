// Package notify delivers booking events to every configured sink.
package notify

import (
	"context"
	"time"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// Sink is one delivery path (queue, email).
type Sink interface {
	Name() string
	Publish(ctx context.Context, event domain.BookingEvent) error
}

type Recorder interface {
	RecordBookingEvent(event, fee string)
}

type Logger interface {
	Warn(format string, v ...interface{})
}

const defaultTimeout = 5 * time.Second

// Fanout implements the use cases' Notifier. Delivery is best effort: a failing
// sink is logged and never reported back to the caller.
type Fanout struct {
	sinks    []Sink
	recorder Recorder
	timeout  time.Duration
	log      Logger
}

func NewFanout(recorder Recorder, log Logger, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, recorder: recorder, timeout: defaultTimeout, log: log}
}

func (f *Fanout) Notify(ctx context.Context, event domain.BookingEvent) {
	if f.recorder != nil {
		f.recorder.RecordBookingEvent(string(event.Type), feeLabel(event.Fee))
	}

	// The booking is already committed; a cancelled request must not drop the event.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	for _, s := range f.sinks {
		if err := s.Publish(ctx, event); err != nil {
			f.log.Warn("Notify: sink=%s type=%s booking_id=%s: %v", s.Name(), event.Type, event.BookingID, err)
		}
	}
}

func feeLabel(fee *domain.CancellationFee) string {
	if fee == nil {
		return "none"
	}
	return string(*fee)
}
