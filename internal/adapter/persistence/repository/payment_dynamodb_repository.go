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
	defaultPaymentsTableName = "payments"
	paymentsOrderIDIndex     = "order_id-index"
	paymentsStatusIndex      = "status-index"
)

type paymentItem struct {
	ID            string  `dynamodbav:"id"`
	OrderID       string  `dynamodbav:"order_id"`
	OrderNumber   string  `dynamodbav:"order_number"`
	Amount        float64 `dynamodbav:"amount"`
	Status        string  `dynamodbav:"status"`
	PaymentMethod string  `dynamodbav:"payment_method"`
	CustomerName  string  `dynamodbav:"customer_name,omitempty"`
	Metadata      string  `dynamodbav:"metadata,omitempty"`
	CreatedAt     string  `dynamodbav:"created_at"`
	UpdatedAt     string  `dynamodbav:"updated_at"`
	ApprovedAt    string  `dynamodbav:"approved_at,omitempty"`
	RejectedAt    string  `dynamodbav:"rejected_at,omitempty"`
	ExpiresAt     string  `dynamodbav:"expires_at,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
//   - GSI: status-index (PK: status)
//
// Puts carry no existence condition: a write to an existing id replaces the
// item (upsert), which keeps redeliveries of the same payment id idempotent.

type PaymentDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	outboxTable string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
		outboxTable: getenvDefault("PAYMENT_OUTBOX_TABLE", defaultOutboxTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it, err := toPaymentItem(p)
	if err != nil {
		return entities.Payment{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

// CreateWithOutbox writes the payment and its outcome-event outbox entry in
// one TransactWriteItems call, so a stored payment always has its event
// staged for the relay.
func (r *PaymentDynamoRepository) CreateWithOutbox(ctx context.Context, p entities.Payment, entry entities.OutboxEntry) (entities.Payment, error) {
	it, err := toPaymentItem(p)
	if err != nil {
		return entities.Payment{}, err
	}
	paymentAV, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
	}
	entryAV, err := attributevalue.MarshalMap(toOutboxItem(entry))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: paymentAV}},
			{Put: &types.Put{TableName: aws.String(r.outboxTable), Item: entryAV}},
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it)
}

func (r *PaymentDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it)
}

func (r *PaymentDynamoRepository) ListByStatus(ctx context.Context, status entities.PaymentStatus) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		p, err := fromPaymentItem(it)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

func (r *PaymentDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toPaymentItem(p entities.Payment) (paymentItem, error) {
	it := paymentItem{
		ID:            p.ID,
		OrderID:       p.OrderID,
		OrderNumber:   p.OrderNumber,
		Amount:        p.Amount,
		Status:        string(p.Status),
		PaymentMethod: string(p.PaymentMethod),
		CustomerName:  p.CustomerName,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339Nano),
		ApprovedAt:    formatOptionalTime(p.ApprovedAt),
		RejectedAt:    formatOptionalTime(p.RejectedAt),
		ExpiresAt:     formatOptionalTime(p.ExpiresAt),
	}
	if len(p.Metadata) > 0 {
		b, err := json.Marshal(p.Metadata)
		if err != nil {
			return paymentItem{}, fmt.Errorf("marshaling payment metadata: %w", err)
		}
		it.Metadata = string(b)
	}
	return it, nil
}

func fromPaymentItem(it paymentItem) (entities.Payment, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("parsing created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	approvedAt, err := parseOptionalTime(it.ApprovedAt)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("parsing approved_at: %w", err)
	}
	rejectedAt, err := parseOptionalTime(it.RejectedAt)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("parsing rejected_at: %w", err)
	}
	expiresAt, err := parseOptionalTime(it.ExpiresAt)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("parsing expires_at: %w", err)
	}

	p := entities.Payment{
		ID:            it.ID,
		OrderID:       it.OrderID,
		OrderNumber:   it.OrderNumber,
		Amount:        it.Amount,
		Status:        entities.PaymentStatus(it.Status),
		PaymentMethod: entities.PaymentMethod(it.PaymentMethod),
		CustomerName:  it.CustomerName,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		ApprovedAt:    approvedAt,
		RejectedAt:    rejectedAt,
		ExpiresAt:     expiresAt,
	}
	if it.Metadata != "" {
		if err := json.Unmarshal([]byte(it.Metadata), &p.Metadata); err != nil {
			return entities.Payment{}, fmt.Errorf("unmarshaling payment metadata: %w", err)
		}
	}
	return p, nil
}
