package interfaces

import "context"

// IEventPublisher abstracts the outcome-event fan-out (e.g. SNS).
//
// Publish hands one serialized event to the fixed outcome topic. The call is
// awaited: the caller treats an error as "event not delivered" and leaves the
// corresponding outbox entry pending.

type IEventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte) error
}
