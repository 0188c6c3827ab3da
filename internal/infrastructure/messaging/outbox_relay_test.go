package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stackfood_payments/internal/domain/entities"
	mock_interfaces "stackfood_payments/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func pendingEntry(t *testing.T, eventType string) entities.OutboxEntry {
	t.Helper()
	entry, err := entities.NewOutboxEntry(eventType, map[string]string{"eventType": eventType})
	if err != nil {
		t.Fatalf("building entry: %v", err)
	}
	return entry
}

func TestOutboxRelayDispatchOnce(t *testing.T) {
	t.Run("publishes pending entries in order and marks them", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		first := pendingEntry(t, "PaymentApproved")
		second := pendingEntry(t, "PaymentPending")

		outbox := mock_interfaces.NewMockIOutboxRepository(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)

		outbox.EXPECT().ListPending(gomock.Any(), defaultRelayBatchSize).Return([]entities.OutboxEntry{first, second}, nil)
		gomock.InOrder(
			publisher.EXPECT().Publish(gomock.Any(), "PaymentApproved", []byte(first.Payload)).Return(nil),
			publisher.EXPECT().Publish(gomock.Any(), "PaymentPending", []byte(second.Payload)).Return(nil),
		)
		outbox.EXPECT().MarkDispatched(gomock.Any(), first.ID).Return(nil)
		outbox.EXPECT().MarkDispatched(gomock.Any(), second.ID).Return(nil)

		relay := NewOutboxRelay(outbox, publisher)
		if got := relay.DispatchOnce(context.Background()); got != 2 {
			t.Fatalf("expected 2 dispatched, got %d", got)
		}
	})

	t.Run("publish failure leaves entry pending and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		first := pendingEntry(t, "PaymentRejected")
		second := pendingEntry(t, "PaymentPending")

		outbox := mock_interfaces.NewMockIOutboxRepository(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)

		outbox.EXPECT().ListPending(gomock.Any(), defaultRelayBatchSize).Return([]entities.OutboxEntry{first, second}, nil)
		publisher.EXPECT().Publish(gomock.Any(), "PaymentRejected", gomock.Any()).Return(errors.New("sns unavailable"))
		publisher.EXPECT().Publish(gomock.Any(), "PaymentPending", gomock.Any()).Return(nil)
		// No MarkDispatched for the failed entry.
		outbox.EXPECT().MarkDispatched(gomock.Any(), second.ID).Return(nil)

		relay := NewOutboxRelay(outbox, publisher)
		if got := relay.DispatchOnce(context.Background()); got != 1 {
			t.Fatalf("expected 1 dispatched, got %d", got)
		}
	})

	t.Run("list failure dispatches nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		outbox := mock_interfaces.NewMockIOutboxRepository(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		outbox.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, errors.New("index unavailable"))

		relay := NewOutboxRelay(outbox, publisher)
		if got := relay.DispatchOnce(context.Background()); got != 0 {
			t.Fatalf("expected 0 dispatched, got %d", got)
		}
	})
}

func TestOutboxRelayStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	outbox := mock_interfaces.NewMockIOutboxRepository(ctrl)
	publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
	outbox.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	relay := NewOutboxRelay(outbox, publisher)
	relay.interval = 5 * time.Millisecond

	relay.Start(context.Background())
	relay.Start(context.Background()) // second Start must not spawn a second loop

	time.Sleep(20 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := relay.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	// Stopping again is a no-op.
	if err := relay.Stop(stopCtx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestOutboxEntryPayloadIsSelfDescribing(t *testing.T) {
	entry := pendingEntry(t, "PaymentApproved")

	var decoded map[string]string
	if err := json.Unmarshal(entry.Payload, &decoded); err != nil {
		t.Fatalf("payload did not decode: %v", err)
	}
	if decoded["eventType"] != "PaymentApproved" {
		t.Fatalf("expected eventType discriminant, got %+v", decoded)
	}
}
