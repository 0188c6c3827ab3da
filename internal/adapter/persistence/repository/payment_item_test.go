package repository

import (
	"testing"

	"stackfood_payments/internal/domain/entities"
)

func TestPaymentItemMapping(t *testing.T) {
	p := entities.NewPayment("O1", "ORD-001", 100.50, "Maria CANCELADO")
	p.Reject("Pagamento rejeitado via fake checkout")

	it, err := toPaymentItem(p)
	if err != nil {
		t.Fatalf("toPaymentItem: %v", err)
	}
	got, err := fromPaymentItem(it)
	if err != nil {
		t.Fatalf("fromPaymentItem: %v", err)
	}

	if got.ID != p.ID || got.OrderID != p.OrderID || got.OrderNumber != p.OrderNumber {
		t.Fatalf("identifiers did not survive the round trip: %+v", got)
	}
	if got.Amount != p.Amount {
		t.Fatalf("amount %v != %v", got.Amount, p.Amount)
	}
	if got.Status != entities.PaymentStatusRejected || got.PaymentMethod != entities.PaymentMethodQRCode {
		t.Fatalf("status/method did not survive: %+v", got)
	}
	if got.RejectedAt == nil || !got.RejectedAt.Equal(*p.RejectedAt) {
		t.Fatalf("rejected_at did not survive: %v", got.RejectedAt)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(*p.ExpiresAt) {
		t.Fatalf("expires_at did not survive: %v", got.ExpiresAt)
	}
	reason, ok := got.RejectionReason()
	if !ok || reason != "Pagamento rejeitado via fake checkout" {
		t.Fatalf("metadata did not survive: %q (ok=%v)", reason, ok)
	}

	// Untouched optional fields stay absent rather than zero-valued.
	if got.ApprovedAt != nil {
		t.Fatalf("approved_at should stay nil, got %v", got.ApprovedAt)
	}
}

func TestToPaymentItemMetadataMarshalError(t *testing.T) {
	p := entities.NewPayment("O1", "ORD-001", 100, "")
	p.Metadata = map[string]interface{}{"bad": func() {}}

	if _, err := toPaymentItem(p); err == nil {
		t.Fatal("expected an error for unmarshalable metadata")
	}
}

func TestFromPaymentItemCorruptFields(t *testing.T) {
	base := func(t *testing.T) paymentItem {
		t.Helper()
		p := entities.NewPayment("O1", "ORD-001", 100, "")
		it, err := toPaymentItem(p)
		if err != nil {
			t.Fatalf("toPaymentItem: %v", err)
		}
		return it
	}

	cases := []struct {
		name   string
		mutate func(*paymentItem)
	}{
		{"bad created_at", func(it *paymentItem) { it.CreatedAt = "yesterday" }},
		{"bad updated_at", func(it *paymentItem) { it.UpdatedAt = "" }},
		{"bad expires_at", func(it *paymentItem) { it.ExpiresAt = "soon" }},
		{"bad metadata", func(it *paymentItem) { it.Metadata = "{not json" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := base(t)
			tc.mutate(&it)
			if _, err := fromPaymentItem(it); err == nil {
				t.Fatal("expected an error for a corrupt stored item")
			}
		})
	}
}
