package messaging

import (
	"context"
	"log"
	"sync"
	"time"

	"stackfood_payments/internal/usecase/interfaces"
)

const (
	defaultRelayInterval  = 2 * time.Second
	defaultRelayBatchSize = 25
)

// OutboxRelay drains pending outbox entries to the event publisher.
//
// One relay instance owns at most one drain loop. Entries are published
// oldest first; an entry is marked dispatched only after a successful
// publish, so a broker outage leaves it pending for the next pass
// (at-least-once delivery).

type OutboxRelay struct {
	outbox    interfaces.IOutboxRepository
	publisher interfaces.IEventPublisher
	interval  time.Duration
	batchSize int

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewOutboxRelay(outbox interfaces.IOutboxRepository, publisher interfaces.IEventPublisher) *OutboxRelay {
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		interval:  defaultRelayInterval,
		batchSize: defaultRelayBatchSize,
	}
}

// Start launches the drain loop. Calling Start on a running relay is a no-op.
func (r *OutboxRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	log.Printf("[outbox][relay] starting interval=%s batch=%d", r.interval, r.batchSize)
	go r.run(loopCtx)
}

// Stop signals the loop and waits for it to finish or for ctx to expire.
func (r *OutboxRelay) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *OutboxRelay) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[outbox][relay] stopped")
			return
		case <-ticker.C:
			r.DispatchOnce(ctx)
		}
	}
}

// DispatchOnce drains one batch of pending entries and reports how many were
// published and marked dispatched.
func (r *OutboxRelay) DispatchOnce(ctx context.Context) int {
	entries, err := r.outbox.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("[outbox][relay] list pending failed err=%v", err)
		return 0
	}

	dispatched := 0
	for _, entry := range entries {
		if err := r.publisher.Publish(ctx, entry.EventType, entry.Payload); err != nil {
			log.Printf("[outbox][relay] publish failed id=%s event=%s err=%v", entry.ID, entry.EventType, err)
			continue
		}
		if err := r.outbox.MarkDispatched(ctx, entry.ID); err != nil {
			// The event went out but stays pending; the next pass republishes
			// it, which downstream consumers must tolerate anyway.
			log.Printf("[outbox][relay] mark dispatched failed id=%s err=%v", entry.ID, err)
			continue
		}
		dispatched++
	}
	return dispatched
}
