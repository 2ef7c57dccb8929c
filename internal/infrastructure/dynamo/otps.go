package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/otp-auth-api/internal/domain"
)

// OtpRepo provides typed DynamoDB operations for the otp_codes table.
// PK: otp_id (ULID). GSI: identity-index on the identity lookup key.
type OtpRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOtpRepo(client *dynamodb.Client, tableName string) *OtpRepo {
	return &OtpRepo{client: client, tableName: tableName}
}

func (r *OtpRepo) Put(ctx context.Context, rec *domain.OtpRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// DeleteForIdentity removes every OTP record for the identity, expired or
// not. Running this before each insert keeps at most one live code per
// identity without resolving ambiguity at read time.
func (r *OtpRepo) DeleteForIdentity(ctx context.Context, identity string) error {
	recs, err := r.queryByIdentity(ctx, identity, nil, nil)
	if err != nil {
		return err
	}
	var firstErr error
	for _, rec := range recs {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       strKey("otp_id", rec.OtpID),
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FindLive returns the record matching identity and code that is unverified
// and unexpired. If concurrent sends left more than one, the earliest record
// id wins; ULIDs order by creation time, so that is the oldest record.
func (r *OtpRepo) FindLive(ctx context.Context, identity, code string, now time.Time) (*domain.OtpRecord, error) {
	filter := aws.String("code = :c AND verified = :f AND expires_at > :now")
	values := map[string]types.AttributeValue{
		":c":   &types.AttributeValueMemberS{Value: code},
		":f":   &types.AttributeValueMemberBOOL{Value: false},
		":now": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
	}
	recs, err := r.queryByIdentity(ctx, identity, filter, values)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	oldest := &recs[0]
	for i := range recs[1:] {
		if recs[i+1].OtpID < oldest.OtpID {
			oldest = &recs[i+1]
		}
	}
	return oldest, nil
}

// MarkVerified flips verified=true under a condition that the record is
// still live. The conditional write is what makes check-and-mark atomic:
// of two concurrent logins holding the same record, exactly one write
// succeeds and the loser gets ErrUnauthorized.
func (r *OtpRepo) MarkVerified(ctx context.Context, otpID string, now time.Time) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("otp_id", otpID),
		UpdateExpression:    aws.String("SET #v = :t"),
		ConditionExpression: aws.String("attribute_exists(otp_id) AND #v = :f AND expires_at > :now"),
		ExpressionAttributeNames: map[string]string{
			"#v": fieldVerified,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":   &types.AttributeValueMemberBOOL{Value: true},
			":f":   &types.AttributeValueMemberBOOL{Value: false},
			":now": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("otp no longer live: %w", domain.ErrUnauthorized)
	}
	return err
}

func (r *OtpRepo) queryByIdentity(ctx context.Context, identity string, filter *string, extraValues map[string]types.AttributeValue) ([]domain.OtpRecord, error) {
	values := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: identity},
	}
	for k, v := range extraValues {
		values[k] = v
	}
	var recs []domain.OtpRecord
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String("identity-index"),
			KeyConditionExpression:    aws.String("#id = :id"),
			FilterExpression:          filter,
			ExpressionAttributeNames:  map[string]string{"#id": "identity"},
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.OtpRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		recs = append(recs, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return recs, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
