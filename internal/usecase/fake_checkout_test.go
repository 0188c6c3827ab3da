package usecase

import (
	"testing"

	"stackfood_payments/internal/domain/entities"
)

func TestFakeCheckoutDetermineStatus(t *testing.T) {
	s := NewFakeCheckoutService()

	cases := []struct {
		name         string
		customerName string
		want         entities.PaymentStatus
	}{
		{"empty", "", entities.PaymentStatusPending},
		{"whitespace only", "   ", entities.PaymentStatusPending},
		{"lowercase pago", "pago", entities.PaymentStatusApproved},
		{"uppercase pago", "PAGO", entities.PaymentStatusApproved},
		{"pago inside a name", "Cliente Pago", entities.PaymentStatusApproved},
		{"lowercase cancelado", "cancelado", entities.PaymentStatusRejected},
		{"uppercase cancelado", "CANCELADO", entities.PaymentStatusRejected},
		{"rejected marker", "Order Rejected", entities.PaymentStatusRejected},
		{"both markers resolve approved", "Pago Cancelado", entities.PaymentStatusApproved},
		{"ordinary name", "Carlos Silva", entities.PaymentStatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.DetermineStatus(tc.customerName); got != tc.want {
				t.Fatalf("DetermineStatus(%q) = %s, want %s", tc.customerName, got, tc.want)
			}
		})
	}
}
