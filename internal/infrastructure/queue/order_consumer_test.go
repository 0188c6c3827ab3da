package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"stackfood_payments/internal/domain/entities"
	mock_queue "stackfood_payments/internal/infrastructure/queue/mocks"
	"stackfood_payments/internal/usecase"
	mock_usecase "stackfood_payments/internal/usecase/mocks"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/mock/gomock"
)

const testQueueURL = "http://localhost:4566/000000000000/order-created"

func orderCreatedMessage(t *testing.T, id, orderID, orderNumber string, amount float64, customerName string) types.Message {
	t.Helper()
	inner, err := json.Marshal(map[string]interface{}{
		"OrderId":      orderID,
		"OrderNumber":  orderNumber,
		"TotalAmount":  amount,
		"CustomerName": customerName,
	})
	if err != nil {
		t.Fatalf("marshaling inner event: %v", err)
	}
	body, err := json.Marshal(map[string]string{
		"Type":      "Notification",
		"MessageId": id,
		"TopicArn":  "arn:aws:sns:us-east-1:000000000000:order-events",
		"Message":   string(inner),
	})
	if err != nil {
		t.Fatalf("marshaling envelope: %v", err)
	}
	return types.Message{
		MessageId:     aws.String(id),
		ReceiptHandle: aws.String("rh-" + id),
		Body:          aws.String(string(body)),
	}
}

func collectDeletes(m *mock_queue.MockSQSAPI, deleted *[]string) *gomock.Call {
	return m.EXPECT().DeleteMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
			*deleted = append(*deleted, aws.ToString(in.ReceiptHandle))
			return &sqs.DeleteMessageOutput{}, nil
		})
}

func TestHandleBatch_PoisonMessageInTheMiddle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sqsMock := mock_queue.NewMockSQSAPI(ctrl)
	ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
	consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)

	msgs := []types.Message{
		orderCreatedMessage(t, "m1", "O1", "ORD-001", 100, "Cliente Pago"),
		{
			MessageId:     aws.String("m2"),
			ReceiptHandle: aws.String("rh-m2"),
			Body:          aws.String("this is not json"),
		},
		orderCreatedMessage(t, "m3", "O3", "ORD-003", 75, "Carlos Silva"),
	}

	// Pipeline runs only for the two well-formed messages.
	ucMock.EXPECT().Execute(gomock.Any(), usecase.CreatePaymentInput{OrderID: "O1", OrderNumber: "ORD-001", Amount: 100, CustomerName: "Cliente Pago"}).
		Return(entities.NewPayment("O1", "ORD-001", 100, "Cliente Pago"), nil)
	ucMock.EXPECT().Execute(gomock.Any(), usecase.CreatePaymentInput{OrderID: "O3", OrderNumber: "ORD-003", Amount: 75, CustomerName: "Carlos Silva"}).
		Return(entities.NewPayment("O3", "ORD-003", 75, "Carlos Silva"), nil)

	var deleted []string
	collectDeletes(sqsMock, &deleted).Times(3)

	consumer.handleBatch(context.Background(), msgs)

	want := []string{"rh-m1", "rh-m2", "rh-m3"}
	if fmt.Sprint(deleted) != fmt.Sprint(want) {
		t.Fatalf("expected deletes %v, got %v", want, deleted)
	}
}

func TestHandleBatch_PipelineFailureLeavesMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sqsMock := mock_queue.NewMockSQSAPI(ctrl)
	ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
	consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)

	msgs := []types.Message{
		orderCreatedMessage(t, "m1", "O1", "ORD-001", 100, ""),
		orderCreatedMessage(t, "m2", "O2", "ORD-002", 50, ""),
	}

	ucMock.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(entities.Payment{}, errors.New("dynamodb unavailable"))
	ucMock.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(entities.NewPayment("O2", "ORD-002", 50, ""), nil)

	var deleted []string
	collectDeletes(sqsMock, &deleted).Times(1)

	consumer.handleBatch(context.Background(), msgs)

	// Only the second message is acknowledged; the first stays for redelivery.
	if len(deleted) != 1 || deleted[0] != "rh-m2" {
		t.Fatalf("expected only rh-m2 deleted, got %v", deleted)
	}
}

func TestProcessMessage_UnprocessablePayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"body is not json", "garbage"},
		{"envelope without inner message", `{"Type":"Notification","MessageId":"x"}`},
		{"inner message is not json", `{"Type":"Notification","Message":"not json"}`},
		{"inner message missing order id", `{"Type":"Notification","Message":"{\"orderNumber\":\"ORD-001\"}"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sqsMock := mock_queue.NewMockSQSAPI(ctrl)
			ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
			consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)

			var deleted []string
			collectDeletes(sqsMock, &deleted).Times(1)

			consumer.processMessage(context.Background(), types.Message{
				MessageId:     aws.String("poison"),
				ReceiptHandle: aws.String("rh-poison"),
				Body:          aws.String(tc.body),
			})

			if len(deleted) != 1 || deleted[0] != "rh-poison" {
				t.Fatalf("expected poison message to be deleted, got %v", deleted)
			}
		})
	}
}

func TestProcessMessage_CaseInsensitiveDecoding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sqsMock := mock_queue.NewMockSQSAPI(ctrl)
	ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
	consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)

	// Upstream serializers emit PascalCase keys; decoding must tolerate them.
	msg := orderCreatedMessage(t, "m1", "O1", "ORD-001", 100, "Cliente Pago")

	ucMock.EXPECT().Execute(gomock.Any(), usecase.CreatePaymentInput{OrderID: "O1", OrderNumber: "ORD-001", Amount: 100, CustomerName: "Cliente Pago"}).
		Return(entities.NewPayment("O1", "ORD-001", 100, "Cliente Pago"), nil)

	var deleted []string
	collectDeletes(sqsMock, &deleted).Times(1)

	consumer.processMessage(context.Background(), msg)

	if len(deleted) != 1 {
		t.Fatalf("expected message to be acknowledged, got deletes %v", deleted)
	}
}

func TestProcessMessage_DeleteFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sqsMock := mock_queue.NewMockSQSAPI(ctrl)
	ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
	consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)

	ucMock.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(entities.NewPayment("O1", "ORD-001", 100, ""), nil)
	sqsMock.EXPECT().DeleteMessage(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("network down"))

	consumer.processMessage(context.Background(), orderCreatedMessage(t, "m1", "O1", "ORD-001", 100, ""))
}

func TestConsumerRecoversFromReceiveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sqsMock := mock_queue.NewMockSQSAPI(ctrl)
	ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
	consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)
	consumer.backoff = time.Millisecond

	polled := make(chan struct{})
	gomock.InOrder(
		sqsMock.EXPECT().ReceiveMessage(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset")),
		sqsMock.EXPECT().ReceiveMessage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *sqs.ReceiveMessageInput, ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
				select {
				case polled <- struct{}{}:
				default:
				}
				return &sqs.ReceiveMessageOutput{}, nil
			}).AnyTimes(),
	)

	consumer.Start(context.Background())

	// The loop must survive the transport error and poll again.
	select {
	case <-polled:
	case <-time.After(time.Second):
		t.Fatal("loop did not poll again after receive failure")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := consumer.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestConsumerStopInterruptsReceiveBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sqsMock := mock_queue.NewMockSQSAPI(ctrl)
	ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
	consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)
	consumer.backoff = time.Minute

	failed := make(chan struct{})
	sqsMock.EXPECT().ReceiveMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *sqs.ReceiveMessageInput, ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
			select {
			case failed <- struct{}{}:
			default:
			}
			return nil, errors.New("connection reset")
		}).AnyTimes()

	consumer.Start(context.Background())

	select {
	case <-failed:
	case <-time.After(time.Second):
		t.Fatal("loop never attempted a receive")
	}

	// Stop must not wait out the minute-long backoff.
	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := consumer.Stop(stopCtx); err != nil {
		t.Fatalf("stop during backoff: %v", err)
	}
}

func TestConsumerStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sqsMock := mock_queue.NewMockSQSAPI(ctrl)
	ucMock := mock_usecase.NewMockICreatePaymentUseCase(ctrl)
	consumer := NewOrderConsumer(sqsMock, testQueueURL, ucMock)

	sqsMock.EXPECT().ReceiveMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Millisecond):
				return &sqs.ReceiveMessageOutput{}, nil
			}
		}).AnyTimes()

	consumer.Start(context.Background())
	consumer.Start(context.Background()) // second Start must not spawn a second loop

	time.Sleep(10 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := consumer.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := consumer.Stop(stopCtx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
