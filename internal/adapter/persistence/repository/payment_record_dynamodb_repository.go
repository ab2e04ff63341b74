package repository

import (
	"context"
	"errors"
	"sort"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName    = "payment_records"
	paymentsQuoteIDIndex        = "quote_id-index"
	paymentsReconciliationIndex = "reconciliation_state-index"
)

type paymentRecordItem struct {
	ID                     string `dynamodbav:"id"`
	QuoteID                string `dynamodbav:"quote_id"`
	Provider               string `dynamodbav:"provider"`
	AmountMinor            int64  `dynamodbav:"amount_minor"`
	Currency               string `dynamodbav:"currency"`
	Status                 string `dynamodbav:"status"`
	PaymentMethodLabel     string `dynamodbav:"payment_method_label,omitempty"`
	ReconciliationState    string `dynamodbav:"reconciliation_state,omitempty"`
	ReconciliationAttempts int    `dynamodbav:"reconciliation_attempts"`
	LastError              string `dynamodbav:"last_error,omitempty"`
	PaidAt                 string `dynamodbav:"paid_at,omitempty"`
	CreatedAt              string `dynamodbav:"created_at"`
	UpdatedAt              string `dynamodbav:"updated_at"`
}

// PaymentRecordDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, the gateway intent id)
//   - GSI: quote_id-index (PK: quote_id)
//   - GSI: reconciliation_state-index (PK: reconciliation_state), sparse
type PaymentRecordDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordDynamoRepository)(nil)

func NewPaymentRecordDynamoRepository(ddb DynamoAPI, tableName string) *PaymentRecordDynamoRepository {
	if tableName == "" {
		tableName = defaultPaymentsTableName
	}
	return &PaymentRecordDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentRecordDynamoRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	av, err := attributevalue.MarshalMap(toPaymentRecordItem(p))
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentRecord{}, interfaces.ErrAlreadyExists
		}
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentRecordDynamoRepository) Save(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	av, err := attributevalue.MarshalMap(toPaymentRecordItem(p))
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentRecordDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

func (r *PaymentRecordDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalPaymentRecords(out.Items)
}

func (r *PaymentRecordDynamoRepository) ListByReconciliationState(ctx context.Context, state entities.ReconciliationState, limit int) ([]entities.PaymentRecord, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsReconciliationIndex),
		KeyConditionExpression: aws.String("reconciliation_state = :state"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state": &types.AttributeValueMemberS{Value: string(state)},
		},
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	return unmarshalPaymentRecords(out.Items)
}

func unmarshalPaymentRecords(raw []map[string]types.AttributeValue) ([]entities.PaymentRecord, error) {
	items := make([]entities.PaymentRecord, 0, len(raw))
	for _, av := range raw {
		var it paymentRecordItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentRecordItem(it))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func toPaymentRecordItem(p entities.PaymentRecord) paymentRecordItem {
	it := paymentRecordItem{
		ID:                     p.ID,
		QuoteID:                p.QuoteID,
		Provider:               p.Provider,
		AmountMinor:            p.AmountMinor,
		Currency:               p.Currency,
		Status:                 string(p.Status),
		PaymentMethodLabel:     p.PaymentMethodLabel,
		ReconciliationState:    string(p.ReconciliationState),
		ReconciliationAttempts: p.ReconciliationAttempts,
		LastError:              p.LastError,
		CreatedAt:              formatTime(p.CreatedAt),
		UpdatedAt:              formatTime(p.UpdatedAt),
	}
	if p.PaidAt != nil {
		it.PaidAt = formatTime(*p.PaidAt)
	}
	return it
}

func fromPaymentRecordItem(it paymentRecordItem) entities.PaymentRecord {
	p := entities.PaymentRecord{
		ID:                     it.ID,
		QuoteID:                it.QuoteID,
		Provider:               it.Provider,
		AmountMinor:            it.AmountMinor,
		Currency:               it.Currency,
		Status:                 entities.IntentStatus(it.Status),
		PaymentMethodLabel:     it.PaymentMethodLabel,
		ReconciliationState:    entities.ReconciliationState(it.ReconciliationState),
		ReconciliationAttempts: it.ReconciliationAttempts,
		LastError:              it.LastError,
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
	}
	if it.PaidAt != "" {
		paidAt := parseTime(it.PaidAt)
		p.PaidAt = &paidAt
	}
	return p
}
