package dynamodb

import (
	"context"
	"sort"

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

// MessageRepository implements ports.MessageRepository using DynamoDB.
// Conversation history reads one GSI1 partition keyed by the unordered
// participant pair, so both directions of a conversation land in the same
// partition and a history read never scans the table.
type MessageRepository struct {
	client *dynamodb.Client
	tables TableConfig
	logger *zap.Logger
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(client *dynamodb.Client, tables TableConfig, logger *zap.Logger) ports.MessageRepository {
	return &MessageRepository{
		client: client,
		tables: tables,
		logger: logger,
	}
}

// Save persists a message to DynamoDB
func (r *MessageRepository) Save(ctx context.Context, message *entities.Message) error {
	av, err := attributevalue.MarshalMap(newMessageItem(message))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal message")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tables.TableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save message",
			zap.Error(err),
			zap.String("messageId", message.ID()),
		)
		return pkgerrors.NewDatabaseError("save message", err)
	}

	return nil
}

// FindByID retrieves a message by id
func (r *MessageRepository) FindByID(ctx context.Context, messageID string) (*entities.Message, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: messagePK(messageID)},
			"SK": &types.AttributeValueMemberS{Value: "MESSAGE"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get message", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("message")
	}

	var item messageItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal message")
	}

	return item.toEntity()
}

// FindConversation retrieves non-group, undeleted messages exchanged between
// the two users in either direction, newest first
func (r *MessageRepository) FindConversation(ctx context.Context, userEmail, otherEmail string) ([]*entities.Message, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(conversationKey(userEmail, otherEmail)))
	filter := expression.Name("IsDeleted").Equal(expression.Value(false))
	return r.queryMessages(ctx, r.tables.GSI1Name, keyCond, &filter)
}

// FindUnreadByRecipient retrieves unread, undeleted messages addressed to the user
func (r *MessageRepository) FindUnreadByRecipient(ctx context.Context, recipientEmail string) ([]*entities.Message, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value("RECIPIENT#" + recipientEmail))
	filter := expression.Name("IsRead").Equal(expression.Value(false)).
		And(expression.Name("IsDeleted").Equal(expression.Value(false)))
	return r.queryMessages(ctx, r.tables.GSI2Name, keyCond, &filter)
}

// CountUnreadByRecipient counts unread, undeleted messages addressed to the user
func (r *MessageRepository) CountUnreadByRecipient(ctx context.Context, recipientEmail string) (int64, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value("RECIPIENT#" + recipientEmail))
	filter := expression.Name("IsRead").Equal(expression.Value(false)).
		And(expression.Name("IsDeleted").Equal(expression.Value(false)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return 0, pkgerrors.Wrap(err, "failed to build query expression")
	}

	var count int64
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tables.TableName),
			IndexName:                 aws.String(r.tables.GSI2Name),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Select:                    types.SelectCount,
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return 0, pkgerrors.NewDatabaseError("count unread messages", err)
		}

		count += int64(out.Count)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return count, nil
}

// FindByGroupID retrieves a group's messages, newest first. Group history
// keeps soft-deleted messages; only direct-message queries filter them.
func (r *MessageRepository) FindByGroupID(ctx context.Context, groupID string) ([]*entities.Message, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value("GROUPMSG#" + groupID))
	return r.queryMessages(ctx, r.tables.GSI1Name, keyCond, nil)
}

// FindRecentByParticipant retrieves the newest undeleted direct message per
// conversation peer, newest first. Group messages never carry the sender or
// recipient index keys, so both queries see direct messages only.
func (r *MessageRepository) FindRecentByParticipant(ctx context.Context, userEmail string) ([]*entities.Message, error) {
	filter := expression.Name("IsDeleted").Equal(expression.Value(false))

	received, err := r.queryMessages(ctx, r.tables.GSI2Name,
		expression.Key("GSI2PK").Equal(expression.Value("RECIPIENT#"+userEmail)), &filter)
	if err != nil {
		return nil, err
	}
	sent, err := r.queryMessages(ctx, r.tables.GSI3Name,
		expression.Key("GSI3PK").Equal(expression.Value("SENDER#"+userEmail)), &filter)
	if err != nil {
		return nil, err
	}

	newestByPeer := make(map[string]*entities.Message)
	for _, message := range append(received, sent...) {
		peer := message.SenderEmail()
		if peer == userEmail {
			peer = message.RecipientEmail()
		}
		if newest, ok := newestByPeer[peer]; !ok || message.Timestamp().After(newest.Timestamp()) {
			newestByPeer[peer] = message
		}
	}

	result := make([]*entities.Message, 0, len(newestByPeer))
	for _, message := range newestByPeer {
		result = append(result, message)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp().After(result[j].Timestamp())
	})
	return result, nil
}

func (r *MessageRepository) queryMessages(ctx context.Context, indexName string, keyCond expression.KeyConditionBuilder, filter *expression.ConditionBuilder) ([]*entities.Message, error) {
	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter != nil {
		builder = builder.WithFilter(*filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to build query expression")
	}

	var messages []*entities.Message
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tables.TableName),
			IndexName:                 aws.String(indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query messages", err)
		}

		for _, raw := range out.Items {
			var item messageItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.Wrap(err, "failed to unmarshal message")
			}
			message, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			messages = append(messages, message)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return messages, nil
}
