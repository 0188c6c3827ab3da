package interfaces

import (
	"context"

	"stackfood_payments/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// Create/CreateWithOutbox are full upserts keyed by payment id: the callers
// always use a fresh id, so the put reduces to an insert, but rewriting an
// existing id replaces the item.
//
// A zero-value Payment (empty ID) signals "not found" on reads.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	// CreateWithOutbox persists the payment and its outcome event outbox
	// entry in a single atomic write.
	CreateWithOutbox(ctx context.Context, p entities.Payment, entry entities.OutboxEntry) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error)
	ListByStatus(ctx context.Context, status entities.PaymentStatus) ([]entities.Payment, error)
	Delete(ctx context.Context, id string) error
}
