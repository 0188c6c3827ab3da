package queue

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"stackfood_payments/internal/domain/events"
	"stackfood_payments/internal/usecase"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const (
	maxMessagesPerPoll  = 10
	longPollWaitSeconds = 20
	receiveErrorBackoff = 5 * time.Second
)

// SQSAPI is the slice of the SQS client the consumer needs.
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// snsEnvelope is the notification wrapper SNS puts around the order-created
// payload when fanning out to SQS.
type snsEnvelope struct {
	Type      string `json:"Type"`
	MessageID string `json:"MessageId"`
	TopicArn  string `json:"TopicArn"`
	Message   string `json:"Message"`
}

// OrderConsumer long-polls the order-created queue and runs the payment
// creation pipeline once per message.
//
// Acknowledgement rules:
//   - pipeline success: the message is deleted;
//   - pipeline failure: the message is left for the queue's own redelivery;
//   - unparseable envelope or payload: the message is deleted without
//     invoking the pipeline, so a poison message cannot block the queue.
//
// One consumer instance owns at most one polling loop; messages within a
// batch are processed sequentially in arrival order.

type OrderConsumer struct {
	sqs      SQSAPI
	queueURL string
	usecase  usecase.ICreatePaymentUseCase
	backoff  time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewOrderConsumer(client SQSAPI, queueURL string, uc usecase.ICreatePaymentUseCase) *OrderConsumer {
	return &OrderConsumer{
		sqs:      client,
		queueURL: queueURL,
		usecase:  uc,
		backoff:  receiveErrorBackoff,
	}
}

// Start launches the polling loop. Calling Start on a running consumer is a
// no-op.
func (c *OrderConsumer) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.running = true

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	log.Printf("[order][consumer] starting queue_url=%s", c.queueURL)
	go c.run(loopCtx)
}

// Stop cancels the loop and waits for the in-flight iteration to finish, or
// for ctx to expire, whichever comes first.
func (c *OrderConsumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *OrderConsumer) run(ctx context.Context) {
	defer close(c.done)

	log.Printf("[order][consumer] listening for messages")

	for {
		select {
		case <-ctx.Done():
			log.Printf("[order][consumer] stopped")
			return
		default:
		}

		out, err := c.sqs.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: maxMessagesPerPoll,
			WaitTimeSeconds:     longPollWaitSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("[order][consumer] stopped")
				return
			}
			log.Printf("[order][consumer] receive failed err=%v; retrying in %s", err, c.backoff)
			select {
			case <-ctx.Done():
			case <-time.After(c.backoff):
			}
			continue
		}

		if len(out.Messages) > 0 {
			log.Printf("[order][consumer] received %d messages", len(out.Messages))
			c.handleBatch(ctx, out.Messages)
		}
	}
}

// handleBatch processes messages sequentially; one message's failure never
// aborts the rest of the batch.
func (c *OrderConsumer) handleBatch(ctx context.Context, msgs []types.Message) {
	for _, msg := range msgs {
		c.processMessage(ctx, msg)
	}
}

func (c *OrderConsumer) processMessage(ctx context.Context, msg types.Message) {
	messageID := aws.ToString(msg.MessageId)
	log.Printf("[order][consumer] processing message_id=%s", messageID)

	var env snsEnvelope
	if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &env); err != nil || strings.TrimSpace(env.Message) == "" {
		log.Printf("[order][consumer] invalid notification envelope message_id=%s; discarding", messageID)
		c.deleteMessage(ctx, msg)
		return
	}

	var evt events.OrderCreated
	if err := json.Unmarshal([]byte(env.Message), &evt); err != nil {
		log.Printf("[order][consumer] order-created payload did not decode message_id=%s err=%v; discarding", messageID, err)
		c.deleteMessage(ctx, msg)
		return
	}
	if strings.TrimSpace(evt.OrderID) == "" {
		log.Printf("[order][consumer] order-created payload missing order id message_id=%s; discarding", messageID)
		c.deleteMessage(ctx, msg)
		return
	}

	log.Printf("[order][consumer] order-created received order_id=%s order_number=%s", evt.OrderID, evt.OrderNumber)

	payment, err := c.usecase.Execute(ctx, usecase.CreatePaymentInput{
		OrderID:      evt.OrderID,
		OrderNumber:  evt.OrderNumber,
		Amount:       evt.TotalAmount,
		CustomerName: evt.CustomerName,
	})
	if err != nil {
		// Leave the message for redelivery; the queue's backoff drives retries.
		log.Printf("[order][consumer] pipeline failed message_id=%s order_id=%s err=%v", messageID, evt.OrderID, err)
		return
	}

	log.Printf("[order][consumer] payment created payment_id=%s status=%s", payment.ID, payment.Status)
	c.deleteMessage(ctx, msg)
}

func (c *OrderConsumer) deleteMessage(ctx context.Context, msg types.Message) {
	_, err := c.sqs.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Printf("[order][consumer] delete failed message_id=%s err=%v", aws.ToString(msg.MessageId), err)
		return
	}
	log.Printf("[order][consumer] message deleted message_id=%s", aws.ToString(msg.MessageId))
}
