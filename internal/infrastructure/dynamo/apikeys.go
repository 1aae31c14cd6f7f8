package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
)

// APIKeyRepo provides typed DynamoDB operations for the apikeys table. The
// table holds two row shapes: primary records keyed by the token value and
// keyref records keyed by "keyref#"+keyId. Writes of the pair are two
// separate PutItems — there is no cross-record transaction, so callers guard
// against the dangling-keyref case on read.
type APIKeyRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAPIKeyRepo(client *dynamodb.Client, tableName string) *APIKeyRepo {
	return &APIKeyRepo{client: client, tableName: tableName}
}

func (r *APIKeyRepo) PutKey(ctx context.Context, k *domain.APIKey) error {
	item, err := attributevalue.MarshalMap(k)
	if err != nil {
		return fmt.Errorf("marshal api key: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *APIKeyRepo) PutRef(ctx context.Context, ref *domain.KeyRef) error {
	item, err := attributevalue.MarshalMap(ref)
	if err != nil {
		return fmt.Errorf("marshal keyref: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetKey looks up a primary record by its bearer token.
func (r *APIKeyRepo) GetKey(ctx context.Context, tok string) (*domain.APIKey, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pk", tok),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("api key not found: %w", domain.ErrNotFound)
	}
	var k domain.APIKey
	if err := attributevalue.UnmarshalMap(out.Item, &k); err != nil {
		return nil, err
	}
	return &k, nil
}

// GetRef looks up the reverse-lookup record for a public key id.
func (r *APIKeyRepo) GetRef(ctx context.Context, keyID string) (*domain.KeyRef, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pk", domain.KeyRefPrefix+keyID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("keyref not found: %w", domain.ErrNotFound)
	}
	var ref domain.KeyRef
	if err := attributevalue.UnmarshalMap(out.Item, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// QueryByUser returns every row owned by the user via the user_id GSI —
// primary records and keyref records alike. Keyref rows come back with the
// "keyref#" prefix in Token; callers filter them out. Ordering is whatever
// the index returns.
func (r *APIKeyRepo) QueryByUser(ctx context.Context, userID string) ([]domain.APIKey, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var keys []domain.APIKey
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// UpdateKey applies a partial attribute update to the primary record only.
// Keyrefs are immutable after creation.
func (r *APIKeyRepo) UpdateKey(ctx context.Context, tok string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("pk", tok),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *APIKeyRepo) DeleteKey(ctx context.Context, tok string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pk", tok),
	})
	return err
}

func (r *APIKeyRepo) DeleteRef(ctx context.Context, keyID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pk", domain.KeyRefPrefix+keyID),
	})
	return err
}
