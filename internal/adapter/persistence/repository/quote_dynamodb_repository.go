package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"buildquote/internal/domain/entities"
	"buildquote/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultQuotesTableName = "quote_requests"

type quoteItem struct {
	ID                 string   `dynamodbav:"id"`
	Source             string   `dynamodbav:"source"`
	FirstName          string   `dynamodbav:"first_name"`
	LastName           string   `dynamodbav:"last_name,omitempty"`
	Email              string   `dynamodbav:"email"`
	Phone              string   `dynamodbav:"phone,omitempty"`
	ProjectType        string   `dynamodbav:"project_type,omitempty"`
	ProjectSize        string   `dynamodbav:"project_size,omitempty"`
	Location           string   `dynamodbav:"location,omitempty"`
	Timeline           string   `dynamodbav:"timeline,omitempty"`
	Budget             string   `dynamodbav:"budget,omitempty"`
	ProjectDescription string   `dynamodbav:"project_description,omitempty"`
	FileURLs           []string `dynamodbav:"file_urls,omitempty"`
	EstimatedPrice     string   `dynamodbav:"estimated_price,omitempty"`
	Status             string   `dynamodbav:"status"`
	FinalPaymentStatus string   `dynamodbav:"final_payment_status"`
	Reply              string   `dynamodbav:"reply,omitempty"`
	CreatedAt          string   `dynamodbav:"created_at"`
	UpdatedAt          string   `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists QuoteRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// estimated_price is stored as a decimal string so the amount checked at
// payment time is exactly what staff typed in.
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = defaultQuotesTableName
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.QuoteRequest{}, err
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
			return entities.QuoteRequest{}, interfaces.ErrAlreadyExists
		}
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuoteRequest{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteItem(it), nil
}

// List scans the table, newest first. The dashboard works on a few hundred
// quotes, so a filtered scan is acceptable.
func (r *QuoteDynamoRepository) List(ctx context.Context, status entities.QuoteStatus) ([]entities.QuoteRequest, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		}
	}

	quotes := make([]entities.QuoteRequest, 0)
	p := dynamodb.NewScanPaginator(r.ddb, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			quotes = append(quotes, fromQuoteItem(it))
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes, nil
}

func (r *QuoteDynamoRepository) UpdateReview(ctx context.Context, id string, review entities.QuoteReview) (entities.QuoteRequest, error) {
	return r.update(ctx, id, review.EstimatedPrice != nil, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{"#updated_at": "updated_at"}

		if review.Status != nil {
			expr += ", #status = :status"
			vals[":status"] = &types.AttributeValueMemberS{Value: string(*review.Status)}
			names["#status"] = "status"
		}
		if review.EstimatedPrice != nil {
			expr += ", #estimated_price = :estimated_price"
			vals[":estimated_price"] = &types.AttributeValueMemberS{Value: review.EstimatedPrice.StringFixed(2)}
			names["#estimated_price"] = "estimated_price"
		}
		if review.Reply != nil {
			expr += ", #reply = :reply"
			vals[":reply"] = &types.AttributeValueMemberS{Value: *review.Reply}
			names["#reply"] = "reply"
		}
		return expr, vals, names
	})
}

// MarkPaid flips final_payment_status to paid only when it is not paid yet.
func (r *QuoteDynamoRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.QuoteRequest, error) {
	return r.update(ctx, id, true, func(_ string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #fps = :paid, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(paidAt)},
		}
		names := map[string]string{"#updated_at": "updated_at"}
		return expr, vals, names
	})
}

// update applies a partial write. When unpaidOnly is set the write also
// requires final_payment_status <> paid.
func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	unpaidOnly bool,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.QuoteRequest, error) {
	now := formatTime(time.Now())
	updateExpr, values, names := build(now)

	cond := "attribute_exists(#id)"
	condNames := map[string]string{"#id": "id"}
	if unpaidOnly {
		cond += " AND #fps <> :paid"
		condNames["#fps"] = "final_payment_status"
		values[":paid"] = &types.AttributeValueMemberS{Value: string(entities.FinalPaymentStatusPaid)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, condNames),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.QuoteRequest{}, nil
		}
		return entities.QuoteRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.QuoteRequest{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.QuoteRequest) quoteItem {
	it := quoteItem{
		ID:                 q.ID,
		Source:             string(q.Source),
		FirstName:          q.FirstName,
		LastName:           q.LastName,
		Email:              q.Email,
		Phone:              q.Phone,
		ProjectType:        q.ProjectType,
		ProjectSize:        q.ProjectSize,
		Location:           q.Location,
		Timeline:           q.Timeline,
		Budget:             q.Budget,
		ProjectDescription: q.ProjectDescription,
		FileURLs:           q.FileURLs,
		Status:             string(q.Status),
		FinalPaymentStatus: string(q.FinalPaymentStatus),
		Reply:              q.Reply,
		CreatedAt:          formatTime(q.CreatedAt),
		UpdatedAt:          formatTime(q.UpdatedAt),
	}
	if q.EstimatedPrice != nil {
		it.EstimatedPrice = q.EstimatedPrice.StringFixed(2)
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.QuoteRequest {
	q := entities.QuoteRequest{
		ID:                 it.ID,
		Source:             entities.QuoteSource(it.Source),
		FirstName:          it.FirstName,
		LastName:           it.LastName,
		Email:              it.Email,
		Phone:              it.Phone,
		ProjectType:        it.ProjectType,
		ProjectSize:        it.ProjectSize,
		Location:           it.Location,
		Timeline:           it.Timeline,
		Budget:             it.Budget,
		ProjectDescription: it.ProjectDescription,
		FileURLs:           it.FileURLs,
		Status:             entities.QuoteStatus(it.Status),
		FinalPaymentStatus: entities.FinalPaymentStatus(it.FinalPaymentStatus),
		Reply:              it.Reply,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
	if q.FinalPaymentStatus == "" {
		q.FinalPaymentStatus = entities.FinalPaymentStatusUnpaid
	}
	if it.EstimatedPrice != "" {
		if d, err := decimal.NewFromString(it.EstimatedPrice); err == nil {
			q.EstimatedPrice = &d
		}
	}
	return q
}
