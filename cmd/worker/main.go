package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stackfood_payments/internal/adapter/persistence/repository"
	"stackfood_payments/internal/infrastructure/database"
	"stackfood_payments/internal/infrastructure/messaging"
	"stackfood_payments/internal/infrastructure/queue"
	"stackfood_payments/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
)

const shutdownTimeout = 30 * time.Second

func main() {
	queueURL := os.Getenv("ORDER_QUEUE_URL")
	if queueURL == "" {
		log.Fatal("[worker] ORDER_QUEUE_URL is required")
	}
	topicARN := os.Getenv("PAYMENT_EVENTS_TOPIC_ARN")
	if topicARN == "" {
		log.Fatal("[worker] PAYMENT_EVENTS_TOPIC_ARN is required")
	}

	ddb := database.ConnectDynamoDB()
	sqsClient := database.ConnectSQS()
	snsClient := database.ConnectSNS()

	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	outboxRepo := repository.NewOutboxDynamoRepository(ddb)

	createUseCase := usecase.NewCreatePaymentUseCase(paymentRepo, usecase.NewFakeCheckoutService())

	publisher := messaging.NewSNSEventPublisher(snsClient, topicARN)
	relay := messaging.NewOutboxRelay(outboxRepo, publisher)
	consumer := queue.NewOrderConsumer(sqsClient, queueURL, createUseCase)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.Start(ctx)
	relay.Start(ctx)
	log.Printf("[worker] started queue=%s topic=%s", queueURL, topicARN)

	<-ctx.Done()
	log.Print("[worker] shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := consumer.Stop(stopCtx); err != nil {
		log.Printf("[worker] consumer stop: %v", err)
	}
	if err := relay.Stop(stopCtx); err != nil {
		log.Printf("[worker] relay stop: %v", err)
	}
	log.Print("[worker] stopped")
}
