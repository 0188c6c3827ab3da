package response

import (
	"time"

	"stackfood_payments/internal/domain/entities"
)

type PaymentResponse struct {
	ID            string                 `json:"id"`
	OrderID       string                 `json:"order_id"`
	OrderNumber   string                 `json:"order_number"`
	Amount        float64                `json:"amount"`
	Status        string                 `json:"status"`
	PaymentMethod string                 `json:"payment_method"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	ApprovedAt    *time.Time             `json:"approved_at,omitempty"`
	RejectedAt    *time.Time             `json:"rejected_at,omitempty"`
	ExpiresAt     *time.Time             `json:"expires_at,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		OrderNumber:   p.OrderNumber,
		Amount:        p.Amount,
		Status:        string(p.Status),
		PaymentMethod: string(p.PaymentMethod),
		CustomerName:  p.CustomerName,
		Metadata:      p.Metadata,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		ApprovedAt:    p.ApprovedAt,
		RejectedAt:    p.RejectedAt,
		ExpiresAt:     p.ExpiresAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
