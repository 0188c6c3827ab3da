package events

import (
	"time"

	"stackfood_payments/internal/domain/entities"
)

// Event type discriminants carried in the outbound payloads so consumers can
// demultiplex a single topic by kind.
const (
	TypePaymentApproved = "PaymentApproved"
	TypePaymentRejected = "PaymentRejected"
	TypePaymentPending  = "PaymentPending"
)

// OrderCreated is the inbound notification that a new order needs a payment
// attempt. It arrives wrapped in an SNS notification envelope; field matching
// is case-insensitive (encoding/json default) because upstream serializers
// emit PascalCase keys.

type OrderCreated struct {
	OrderID      string    `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	TotalAmount  float64   `json:"totalAmount"`
	CustomerName string    `json:"customerName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PaymentApproved struct {
	EventType   string    `json:"eventType"`
	PaymentID   string    `json:"paymentId"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Amount      float64   `json:"amount"`
	ApprovedAt  time.Time `json:"approvedAt"`
	Timestamp   time.Time `json:"timestamp"`
}

type PaymentRejected struct {
	EventType   string    `json:"eventType"`
	PaymentID   string    `json:"paymentId"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type PaymentPending struct {
	EventType   string     `json:"eventType"`
	PaymentID   string     `json:"paymentId"`
	OrderID     string     `json:"orderId"`
	OrderNumber string     `json:"orderNumber"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

func NewPaymentApproved(p entities.Payment) PaymentApproved {
	approvedAt := time.Now().UTC()
	if p.ApprovedAt != nil {
		approvedAt = *p.ApprovedAt
	}
	return PaymentApproved{
		EventType:   TypePaymentApproved,
		PaymentID:   p.ID,
		OrderID:     p.OrderID,
		OrderNumber: p.OrderNumber,
		Amount:      p.Amount,
		ApprovedAt:  approvedAt,
		Timestamp:   time.Now().UTC(),
	}
}

func NewPaymentRejected(p entities.Payment) PaymentRejected {
	reason, _ := p.RejectionReason()
	return PaymentRejected{
		EventType:   TypePaymentRejected,
		PaymentID:   p.ID,
		OrderID:     p.OrderID,
		OrderNumber: p.OrderNumber,
		Reason:      reason,
		Timestamp:   time.Now().UTC(),
	}
}

func NewPaymentPending(p entities.Payment) PaymentPending {
	return PaymentPending{
		EventType:   TypePaymentPending,
		PaymentID:   p.ID,
		OrderID:     p.OrderID,
		OrderNumber: p.OrderNumber,
		ExpiresAt:   p.ExpiresAt,
		Timestamp:   time.Now().UTC(),
	}
}
