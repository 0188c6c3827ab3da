package interfaces

import (
	"context"

	"stackfood_payments/internal/domain/entities"
)

// IOutboxRepository abstracts DynamoDB persistence for the event outbox.
//
// Entries are created transactionally through IPaymentRepository; this
// interface only covers the relay side of the pattern.

type IOutboxRepository interface {
	// ListPending returns up to limit pending entries, oldest first.
	ListPending(ctx context.Context, limit int) ([]entities.OutboxEntry, error)
	MarkDispatched(ctx context.Context, id string) error
}
