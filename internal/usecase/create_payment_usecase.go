package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"stackfood_payments/internal/domain/entities"
	"stackfood_payments/internal/domain/events"
	"stackfood_payments/internal/usecase/interfaces"
)

var (
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidOrderNumber = errors.New("invalid order number")
)

// RejectionReason is the fixed reason recorded when the fake checkout
// rejects a payment.
const RejectionReason = "Pagamento rejeitado via fake checkout"

// CreatePaymentInput carries the fields of one order-created notification or
// one direct creation request.

type CreatePaymentInput struct {
	OrderID      string
	OrderNumber  string
	Amount       float64
	CustomerName string
}

// ICreatePaymentUseCase encapsulates the order-to-payment pipeline: decide an
// outcome, persist the record together with its outcome event, and return it.

type ICreatePaymentUseCase interface {
	Execute(ctx context.Context, in CreatePaymentInput) (entities.Payment, error)
}

type CreatePaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	checkout interfaces.IFakeCheckoutService
}

var _ ICreatePaymentUseCase = (*CreatePaymentUseCase)(nil)

func NewCreatePaymentUseCase(repo interfaces.IPaymentRepository, checkout interfaces.IFakeCheckoutService) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{repo: repo, checkout: checkout}
}

// Execute runs at most one logical attempt: a single atomic store write and
// no internal retry. Redelivered notifications for an already-processed order
// return the stored record without writing or re-emitting its event.
func (u *CreatePaymentUseCase) Execute(ctx context.Context, in CreatePaymentInput) (entities.Payment, error) {
	in.OrderID = strings.TrimSpace(in.OrderID)
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	if in.OrderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}
	if in.OrderNumber == "" {
		return entities.Payment{}, ErrInvalidOrderNumber
	}

	existing, err := u.repo.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		log.Printf("[payment][usecase] dedup lookup failed order_id=%s err=%v", in.OrderID, err)
		return entities.Payment{}, err
	}
	if existing.ID != "" {
		log.Printf("[payment][usecase] duplicate order notification order_id=%s payment_id=%s status=%s", in.OrderID, existing.ID, existing.Status)
		return existing, nil
	}

	payment := entities.NewPayment(in.OrderID, in.OrderNumber, in.Amount, in.CustomerName)

	switch u.checkout.DetermineStatus(in.CustomerName) {
	case entities.PaymentStatusApproved:
		payment.Approve()
	case entities.PaymentStatusRejected:
		payment.Reject(RejectionReason)
	}

	entry, err := outcomeOutboxEntry(payment)
	if err != nil {
		return entities.Payment{}, err
	}

	created, err := u.repo.CreateWithOutbox(ctx, payment, entry)
	if err != nil {
		log.Printf("[payment][usecase] create failed order_id=%s payment_id=%s err=%v", in.OrderID, payment.ID, err)
		return entities.Payment{}, err
	}

	log.Printf("[payment][usecase] create success order_id=%s payment_id=%s status=%s event=%s", in.OrderID, created.ID, created.Status, entry.EventType)
	return created, nil
}

// outcomeOutboxEntry selects the one outbound event matching the resolved
// status and stages it for the relay.
func outcomeOutboxEntry(p entities.Payment) (entities.OutboxEntry, error) {
	switch p.Status {
	case entities.PaymentStatusApproved:
		return entities.NewOutboxEntry(events.TypePaymentApproved, events.NewPaymentApproved(p))
	case entities.PaymentStatusRejected:
		return entities.NewOutboxEntry(events.TypePaymentRejected, events.NewPaymentRejected(p))
	default:
		return entities.NewOutboxEntry(events.TypePaymentPending, events.NewPaymentPending(p))
	}
}
