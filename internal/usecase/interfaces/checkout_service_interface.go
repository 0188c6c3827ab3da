package interfaces

import "stackfood_payments/internal/domain/entities"

// IFakeCheckoutService decides a payment outcome from the customer name.
//
// It stands in for a real payment gateway: pure, total, and deterministic so
// the pipeline can be exercised end to end without external calls.

type IFakeCheckoutService interface {
	DetermineStatus(customerName string) entities.PaymentStatus
}
