package dynamodb

import (
	"context"
	"errors"

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

// FriendshipUnitOfWork implements ports.FriendshipUnitOfWork with a single
// TransactWriteItems call, so the request status and both friend sets commit
// together or not at all.
type FriendshipUnitOfWork struct {
	client *dynamodb.Client
	tables TableConfig
	logger *zap.Logger
}

// NewFriendshipUnitOfWork creates a new FriendshipUnitOfWork
func NewFriendshipUnitOfWork(client *dynamodb.Client, tables TableConfig, logger *zap.Logger) ports.FriendshipUnitOfWork {
	return &FriendshipUnitOfWork{
		client: client,
		tables: tables,
		logger: logger,
	}
}

// CommitAcceptance writes the accepted request and both updated users in one
// transaction. The request write is conditioned on the stored status still
// being PENDING, so a concurrent accept of the same request fails with a
// Validation error instead of double-applying.
func (u *FriendshipUnitOfWork) CommitAcceptance(ctx context.Context, request *entities.FriendRequest, accepter, requester *entities.User) error {
	requestAV, err := attributevalue.MarshalMap(newRequestItem(request))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal friend request")
	}
	accepterAV, err := attributevalue.MarshalMap(newUserItem(accepter))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal accepter")
	}
	requesterAV, err := attributevalue.MarshalMap(newUserItem(requester))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal requester")
	}

	cond := expression.Name("Status").Equal(expression.Value(string(entities.RequestPending)))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to build condition expression")
	}

	_, err = u.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                 aws.String(u.tables.TableName),
					Item:                      requestAV,
					ConditionExpression:       expr.Condition(),
					ExpressionAttributeNames:  expr.Names(),
					ExpressionAttributeValues: expr.Values(),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(u.tables.TableName),
					Item:      accepterAV,
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(u.tables.TableName),
					Item:      requesterAV,
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return pkgerrors.NewValidationError("friend request already processed")
				}
			}
		}
		u.logger.Error("Failed to commit friendship acceptance",
			zap.Error(err),
			zap.String("sender", request.SenderEmail()),
			zap.String("receiver", request.ReceiverEmail()),
		)
		return pkgerrors.NewDatabaseError("commit friendship acceptance", err)
	}

	u.logger.Info("Friendship committed",
		zap.String("sender", request.SenderEmail()),
		zap.String("receiver", request.ReceiverEmail()),
	)

	return nil
}
