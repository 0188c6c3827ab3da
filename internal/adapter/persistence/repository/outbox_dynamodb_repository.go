package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stackfood_payments/internal/domain/entities"
	"stackfood_payments/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOutboxTableName = "payment_outbox"
	outboxStatusIndex      = "status-index"
)

type outboxItem struct {
	ID           string `dynamodbav:"id"`
	EventType    string `dynamodbav:"event_type"`
	Payload      string `dynamodbav:"payload"`
	Status       string `dynamodbav:"status"`
	CreatedAt    string `dynamodbav:"created_at"`
	DispatchedAt string `dynamodbav:"dispatched_at,omitempty"`
}

// OutboxDynamoRepository persists outbox entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status, SK: created_at)
//
// The status/created_at index lets the relay drain pending entries oldest
// first without scanning.

type OutboxDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOutboxRepository = (*OutboxDynamoRepository)(nil)

func NewOutboxDynamoRepository(ddb *dynamodb.Client) *OutboxDynamoRepository {
	return &OutboxDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENT_OUTBOX_TABLE", defaultOutboxTableName),
	}
}

func (r *OutboxDynamoRepository) ListPending(ctx context.Context, limit int) ([]entities.OutboxEntry, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(outboxStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(entities.OutboxStatusPending)},
		},
		Limit: aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]entities.OutboxEntry, 0, len(out.Items))
	for _, raw := range out.Items {
		var it outboxItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		entry, err := fromOutboxItem(it)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *OutboxDynamoRepository) MarkDispatched(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #dispatched_at = :dispatched_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":            "id",
			"#status":        "status",
			"#dispatched_at": "dispatched_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":        &types.AttributeValueMemberS{Value: string(entities.OutboxStatusDispatched)},
			":dispatched_at": &types.AttributeValueMemberS{Value: now},
		},
	})
	return err
}

func toOutboxItem(e entities.OutboxEntry) outboxItem {
	return outboxItem{
		ID:           e.ID,
		EventType:    e.EventType,
		Payload:      string(e.Payload),
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt.UTC().Format(time.RFC3339Nano),
		DispatchedAt: formatOptionalTime(e.DispatchedAt),
	}
}

func fromOutboxItem(it outboxItem) (entities.OutboxEntry, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return entities.OutboxEntry{}, fmt.Errorf("parsing created_at: %w", err)
	}
	dispatchedAt, err := parseOptionalTime(it.DispatchedAt)
	if err != nil {
		return entities.OutboxEntry{}, fmt.Errorf("parsing dispatched_at: %w", err)
	}
	return entities.OutboxEntry{
		ID:           it.ID,
		EventType:    it.EventType,
		Payload:      json.RawMessage(it.Payload),
		Status:       entities.OutboxStatus(it.Status),
		CreatedAt:    createdAt,
		DispatchedAt: dispatchedAt,
	}, nil
}
