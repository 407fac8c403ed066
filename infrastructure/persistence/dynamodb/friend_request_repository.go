package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/ports"
	"github.com/AlenesK/howudoin/domain/core/entities"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// FriendRequestRepository implements ports.FriendRequestRepository using
// DynamoDB. The (sender, receiver) pair is the partition key, so duplicate
// requests are rejected by the table itself rather than a read-then-write.
type FriendRequestRepository struct {
	client *dynamodb.Client
	tables TableConfig
	logger *zap.Logger
}

// NewFriendRequestRepository creates a new FriendRequestRepository
func NewFriendRequestRepository(client *dynamodb.Client, tables TableConfig, logger *zap.Logger) ports.FriendRequestRepository {
	return &FriendRequestRepository{
		client: client,
		tables: tables,
		logger: logger,
	}
}

// Save persists a friend request. The conditional put only admits a fresh
// pair key or an update carrying the same request id; a concurrent duplicate
// for the pair fails with a Conflict error.
func (r *FriendRequestRepository) Save(ctx context.Context, request *entities.FriendRequest) error {
	av, err := attributevalue.MarshalMap(newRequestItem(request))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal friend request")
	}

	cond := expression.AttributeNotExists(expression.Name("PK")).
		Or(expression.Name("RequestID").Equal(expression.Value(request.ID())))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to build condition expression")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tables.TableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewConflictError("friend request already sent")
		}
		r.logger.Error("Failed to save friend request",
			zap.Error(err),
			zap.String("sender", request.SenderEmail()),
			zap.String("receiver", request.ReceiverEmail()),
		)
		return pkgerrors.NewDatabaseError("save friend request", err)
	}

	return nil
}

// FindBySenderAndReceiver retrieves the request for the exact ordered pair
func (r *FriendRequestRepository) FindBySenderAndReceiver(ctx context.Context, senderEmail, receiverEmail string) (*entities.FriendRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: requestPK(senderEmail, receiverEmail)},
			"SK": &types.AttributeValueMemberS{Value: "REQUEST"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get friend request", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("friend request")
	}

	var item requestItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal friend request")
	}

	return item.toEntity()
}

// FindByReceiverAndStatus retrieves all requests addressed to a user in a given status
func (r *FriendRequestRepository) FindByReceiverAndStatus(ctx context.Context, receiverEmail string, status entities.RequestStatus) ([]*entities.FriendRequest, error) {
	return r.queryByStatus(ctx, r.tables.GSI2Name, "GSI2PK", "RECVREQ#"+receiverEmail, "GSI2SK", status)
}

// FindBySenderAndStatus retrieves all requests sent by a user in a given status
func (r *FriendRequestRepository) FindBySenderAndStatus(ctx context.Context, senderEmail string, status entities.RequestStatus) ([]*entities.FriendRequest, error) {
	return r.queryByStatus(ctx, r.tables.GSI3Name, "GSI3PK", "SENTREQ#"+senderEmail, "GSI3SK", status)
}

func (r *FriendRequestRepository) queryByStatus(ctx context.Context, indexName, pkName, pkValue, skName string, status entities.RequestStatus) ([]*entities.FriendRequest, error) {
	keyCond := expression.Key(pkName).Equal(expression.Value(pkValue)).
		And(expression.Key(skName).BeginsWith(fmt.Sprintf("STATUS#%s#", status)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to build query expression")
	}

	var requests []*entities.FriendRequest
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tables.TableName),
			IndexName:                 aws.String(indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query friend requests", err)
		}

		for _, raw := range out.Items {
			var item requestItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.Wrap(err, "failed to unmarshal friend request")
			}
			request, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			requests = append(requests, request)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return requests, nil
}
