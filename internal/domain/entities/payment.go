package entities

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the payment processing outcome.
//
// The status only moves forward: Pending is the initial state and
// Approved/Rejected/Cancelled are terminal. There is no refund or
// chargeback path in this service.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusApproved  PaymentStatus = "Approved"
	PaymentStatusRejected  PaymentStatus = "Rejected"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
)

// ParsePaymentStatus maps the wire/path representation onto a known status.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected, PaymentStatusCancelled:
		return PaymentStatus(s), true
	}
	return "", false
}

type PaymentMethod string

const (
	PaymentMethodQRCode     PaymentMethod = "QRCode"
	PaymentMethodCreditCard PaymentMethod = "CreditCard"
	PaymentMethodDebitCard  PaymentMethod = "DebitCard"
	PaymentMethodCash       PaymentMethod = "Cash"
	PaymentMethodPix        PaymentMethod = "Pix"
)

// PendingExpiry is how long a pending QR code payment stays payable.
const PendingExpiry = 2 * time.Hour

// MetadataRejectionReason is the metadata key holding the rejection reason.
const MetadataRejectionReason = "rejection_reason"

// Payment is the payment entity persisted by the payments service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//   - GSI2 (status-index): status
//
// ID is assigned once at construction and never reassigned. ExpiresAt is
// fixed at creation to CreatedAt + PendingExpiry.

type Payment struct {
	ID            string                 `json:"id"`
	OrderID       string                 `json:"order_id"`
	OrderNumber   string                 `json:"order_number"`
	Amount        float64                `json:"amount"`
	Status        PaymentStatus          `json:"status"`
	PaymentMethod PaymentMethod          `json:"payment_method"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	ApprovedAt    *time.Time             `json:"approved_at,omitempty"`
	RejectedAt    *time.Time             `json:"rejected_at,omitempty"`
	ExpiresAt     *time.Time             `json:"expires_at,omitempty"`
}

// NewPayment creates a pending QR code payment for an order.
func NewPayment(orderID, orderNumber string, amount float64, customerName string) Payment {
	now := time.Now().UTC()
	expiresAt := now.Add(PendingExpiry)
	return Payment{
		ID:            uuid.NewString(),
		OrderID:       orderID,
		OrderNumber:   orderNumber,
		Amount:        amount,
		Status:        PaymentStatusPending,
		PaymentMethod: PaymentMethodQRCode,
		CustomerName:  customerName,
		Metadata:      map[string]interface{}{},
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     &expiresAt,
	}
}

// Approve transitions the payment to Approved and stamps ApprovedAt.
func (p *Payment) Approve() {
	now := time.Now().UTC()
	p.Status = PaymentStatusApproved
	p.ApprovedAt = &now
	p.UpdatedAt = now
}

// Reject transitions the payment to Rejected and stamps RejectedAt.
// A non-empty reason is recorded under Metadata[MetadataRejectionReason].
func (p *Payment) Reject(reason string) {
	now := time.Now().UTC()
	p.Status = PaymentStatusRejected
	p.RejectedAt = &now
	p.UpdatedAt = now

	if reason != "" {
		if p.Metadata == nil {
			p.Metadata = map[string]interface{}{}
		}
		p.Metadata[MetadataRejectionReason] = reason
	}
}

// Cancel transitions the payment to Cancelled.
func (p *Payment) Cancel() {
	p.Status = PaymentStatusCancelled
	p.UpdatedAt = time.Now().UTC()
}

// RejectionReason returns the recorded rejection reason, if any.
func (p *Payment) RejectionReason() (string, bool) {
	if p.Metadata == nil {
		return "", false
	}
	v, ok := p.Metadata[MetadataRejectionReason]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
