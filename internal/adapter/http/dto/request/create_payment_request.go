package request

import "stackfood_payments/internal/usecase"

// CreatePaymentRequest is the payload for the manual payment-creation route.
// It mirrors the order-created event the worker consumes, so the same
// pipeline can be exercised over HTTP.

type CreatePaymentRequest struct {
	OrderID      string  `json:"order_id" binding:"required"`
	OrderNumber  string  `json:"order_number" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	CustomerName string  `json:"customer_name"`
}

func (r CreatePaymentRequest) ToInput() usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		OrderID:      r.OrderID,
		OrderNumber:  r.OrderNumber,
		Amount:       r.Amount,
		CustomerName: r.CustomerName,
	}
}
