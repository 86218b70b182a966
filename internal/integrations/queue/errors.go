package queue

import "errors"

var (
	ErrClosed  = errors.New("queue: publisher closed")
	ErrPublish = errors.New("queue: publish failed")
)
