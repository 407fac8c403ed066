package dynamodb

import (
	"context"

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

// GroupRepository implements ports.GroupRepository using DynamoDB. Alongside
// the metadata item it writes one membership item per member, which projects
// onto GSI2 to serve member-to-groups lookups. Members are never removed, so
// membership items only accumulate.
type GroupRepository struct {
	client *dynamodb.Client
	tables TableConfig
	logger *zap.Logger
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(client *dynamodb.Client, tables TableConfig, logger *zap.Logger) ports.GroupRepository {
	return &GroupRepository{
		client: client,
		tables: tables,
		logger: logger,
	}
}

// Save persists a group and its membership items
func (r *GroupRepository) Save(ctx context.Context, group *entities.Group) error {
	av, err := attributevalue.MarshalMap(newGroupItem(group))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal group")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tables.TableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save group",
			zap.Error(err),
			zap.String("groupId", group.ID()),
		)
		return pkgerrors.NewDatabaseError("save group", err)
	}

	// Membership puts are idempotent, re-saving an unchanged member set is safe
	for _, member := range group.Members() {
		mav, err := attributevalue.MarshalMap(newMembershipItem(group.ID(), member))
		if err != nil {
			return pkgerrors.Wrap(err, "failed to marshal group membership")
		}
		_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tables.TableName),
			Item:      mav,
		})
		if err != nil {
			r.logger.Error("Failed to save group membership",
				zap.Error(err),
				zap.String("groupId", group.ID()),
				zap.String("member", member),
			)
			return pkgerrors.NewDatabaseError("save group membership", err)
		}
	}

	return nil
}

// FindByID retrieves a group by id
func (r *GroupRepository) FindByID(ctx context.Context, groupID string) (*entities.Group, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: groupPK(groupID)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get group", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("group")
	}

	var item groupItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal group")
	}

	return item.toEntity()
}

// FindByMember retrieves all groups whose member set contains the user
func (r *GroupRepository) FindByMember(ctx context.Context, memberEmail string) ([]*entities.Group, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value("MEMBER#" + memberEmail))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to build query expression")
	}

	var groups []*entities.Group
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tables.TableName),
			IndexName:                 aws.String(r.tables.GSI2Name),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query groups by member", err)
		}

		for _, raw := range out.Items {
			var membership membershipItem
			if err := attributevalue.UnmarshalMap(raw, &membership); err != nil {
				return nil, pkgerrors.Wrap(err, "failed to unmarshal group membership")
			}

			group, err := r.FindByID(ctx, membership.GroupID)
			if err != nil {
				if pkgerrors.IsNotFound(err) {
					r.logger.Warn("Membership item references missing group",
						zap.String("groupId", membership.GroupID),
						zap.String("member", memberEmail),
					)
					continue
				}
				return nil, err
			}
			groups = append(groups, group)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return groups, nil
}
