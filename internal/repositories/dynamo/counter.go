package dynamo

import (
	"context"
	"fmt"

	"visit-counter-api/internal/models"
	"visit-counter-api/internal/repositories"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

const storeName = "dynamodb"

// CounterRepository keeps visit counters in a DynamoDB table. Increments
// use an ADD update expression, so the read-modify-write happens inside
// DynamoDB and concurrent callers never lose updates.
type CounterRepository struct {
	client         API
	table          string
	consistentRead bool
	increment      expression.Expression
	logger         *logrus.Logger
}

// NewCounterRepository creates a DynamoDB backed counter store
func NewCounterRepository(client API, table string, consistentRead bool, logger *logrus.Logger) (*CounterRepository, error) {
	if logger == nil {
		logger = logrus.New()
	}

	update := expression.Add(
		expression.Name(models.VisitsAttribute),
		expression.Value(1),
	)
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build increment expression: %w", err)
	}

	return &CounterRepository{
		client:         client,
		table:          table,
		consistentRead: consistentRead,
		increment:      expr,
		logger:         logger,
	}, nil
}

// Get implements repositories.CounterRepository.Get
func (r *CounterRepository) Get(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(storeName, "Get", key, repositories.ErrInvalidKey)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            itemKey(key),
		ConsistentRead: aws.Bool(r.consistentRead),
	})
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Get", key, err)
	}

	if len(out.Item) == 0 {
		r.logger.WithFields(logrus.Fields{
			"table": r.table,
			"key":   key,
		}).Debug("Counter record not found, reporting zero")
		return 0, nil
	}

	visits, err := decodeVisits(out.Item, false)
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Get", key, err)
	}
	return visits, nil
}

// Increment implements repositories.CounterRepository.Increment
func (r *CounterRepository) Increment(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(storeName, "Increment", key, repositories.ErrInvalidKey)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       itemKey(key),
		UpdateExpression:          r.increment.Update(),
		ExpressionAttributeNames:  r.increment.Names(),
		ExpressionAttributeValues: r.increment.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Increment", key, err)
	}

	visits, err := decodeVisits(out.Attributes, true)
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Increment", key, err)
	}
	return visits, nil
}

// Name implements repositories.CounterRepository.Name
func (r *CounterRepository) Name() string {
	return storeName
}

// Close implements repositories.CounterRepository.Close. The SDK client
// holds no resources that need releasing.
func (r *CounterRepository) Close() error {
	return nil
}

func itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		models.PartitionKeyAttribute: &types.AttributeValueMemberS{Value: key},
	}
}

// decodeVisits reads the visits attribute. An item without the attribute
// counts as zero unless required is set, as it is for UPDATED_NEW output.
func decodeVisits(item map[string]types.AttributeValue, required bool) (uint64, error) {
	if _, ok := item[models.VisitsAttribute]; !ok && required {
		return 0, fmt.Errorf("%w: %s attribute missing", repositories.ErrMalformedItem, models.VisitsAttribute)
	}

	var record models.VisitCounter
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return 0, fmt.Errorf("%w: %v", repositories.ErrMalformedItem, err)
	}
	return record.Visits, nil
}
