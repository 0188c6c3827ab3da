package usecase

import (
	"strings"

	"stackfood_payments/internal/domain/entities"
	"stackfood_payments/internal/usecase/interfaces"
)

// FakeCheckoutService maps well-known customer-name substrings onto payment
// outcomes:
//
//   - contains "PAGO"                  -> Approved
//   - contains "CANCELADO"/"REJECTED" -> Rejected
//   - anything else (or blank)         -> Pending
//
// Matching is case-insensitive. The Approved check runs first, so a name
// carrying both "PAGO" and a rejection marker resolves Approved.

type FakeCheckoutService struct{}

var _ interfaces.IFakeCheckoutService = (*FakeCheckoutService)(nil)

func NewFakeCheckoutService() *FakeCheckoutService {
	return &FakeCheckoutService{}
}

func (s *FakeCheckoutService) DetermineStatus(customerName string) entities.PaymentStatus {
	if strings.TrimSpace(customerName) == "" {
		return entities.PaymentStatusPending
	}

	upperName := strings.ToUpper(customerName)

	if strings.Contains(upperName, "PAGO") {
		return entities.PaymentStatusApproved
	}

	if strings.Contains(upperName, "CANCELADO") || strings.Contains(upperName, "REJECTED") {
		return entities.PaymentStatusRejected
	}

	return entities.PaymentStatusPending
}
