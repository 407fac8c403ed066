package di

import (
	"context"
	"time"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/ports"
	"github.com/AlenesK/howudoin/application/services"
	"github.com/AlenesK/howudoin/infrastructure/config"
	"github.com/AlenesK/howudoin/infrastructure/persistence/dynamodb"
	"github.com/AlenesK/howudoin/infrastructure/persistence/memory"
	"github.com/AlenesK/howudoin/pkg/auth"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	AuthService     *services.AuthService
	FriendService   *services.FriendService
	GroupService    *services.GroupService
	MessageService  *services.MessageService
	JWTValidator    *auth.JWTValidator
	IPRateLimiter   *auth.IPRateLimiter
	UserRateLimiter *auth.UserRateLimiter
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDynamoDBClient creates a DynamoDB client from the ambient AWS configuration
func ProvideDynamoDBClient(ctx context.Context, cfg *config.Config) (*awsdynamodb.Client, error) {
	return dynamodb.NewClient(ctx, cfg.AWSRegion)
}

// ProvideTableConfig names the table and indexes for the DynamoDB repositories
func ProvideTableConfig(cfg *config.Config) dynamodb.TableConfig {
	return dynamodb.TableConfig{
		TableName: cfg.DynamoDBTable,
		GSI1Name:  cfg.GSI1IndexName,
		GSI2Name:  cfg.GSI2IndexName,
		GSI3Name:  cfg.GSI3IndexName,
	}
}

// ProvideMemoryStore creates the shared in-memory store used when the memory
// storage driver is selected
func ProvideMemoryStore() *memory.Store {
	return memory.NewStore()
}

// ProvideUserRepository creates a user repository for the configured driver
func ProvideUserRepository(cfg *config.Config, client *awsdynamodb.Client, tables dynamodb.TableConfig, store *memory.Store, logger *zap.Logger) ports.UserRepository {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.NewUserRepository(store)
	}
	return dynamodb.NewUserRepository(client, tables, logger)
}

// ProvideFriendRequestRepository creates a friend request repository for the configured driver
func ProvideFriendRequestRepository(cfg *config.Config, client *awsdynamodb.Client, tables dynamodb.TableConfig, store *memory.Store, logger *zap.Logger) ports.FriendRequestRepository {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.NewFriendRequestRepository(store)
	}
	return dynamodb.NewFriendRequestRepository(client, tables, logger)
}

// ProvideGroupRepository creates a group repository for the configured driver
func ProvideGroupRepository(cfg *config.Config, client *awsdynamodb.Client, tables dynamodb.TableConfig, store *memory.Store, logger *zap.Logger) ports.GroupRepository {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.NewGroupRepository(store)
	}
	return dynamodb.NewGroupRepository(client, tables, logger)
}

// ProvideMessageRepository creates a message repository for the configured driver
func ProvideMessageRepository(cfg *config.Config, client *awsdynamodb.Client, tables dynamodb.TableConfig, store *memory.Store, logger *zap.Logger) ports.MessageRepository {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.NewMessageRepository(store)
	}
	return dynamodb.NewMessageRepository(client, tables, logger)
}

// ProvideFriendshipUnitOfWork creates the acceptance unit of work for the configured driver
func ProvideFriendshipUnitOfWork(cfg *config.Config, client *awsdynamodb.Client, tables dynamodb.TableConfig, store *memory.Store, logger *zap.Logger) ports.FriendshipUnitOfWork {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.NewFriendshipUnitOfWork(store)
	}
	return dynamodb.NewFriendshipUnitOfWork(client, tables, logger)
}

// ProvideJWTConfig builds the shared token settings
func ProvideJWTConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Expiry:    time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

// ProvideJWTGenerator creates the token generator
func ProvideJWTGenerator(jwtCfg auth.JWTConfig) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(jwtCfg)
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(jwtCfg auth.JWTConfig) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(jwtCfg)
}

// ProvideIPRateLimiter creates the per-IP rate limiter
func ProvideIPRateLimiter(cfg *config.Config) *auth.IPRateLimiter {
	return auth.NewIPRateLimiter(cfg.IPRateLimit)
}

// ProvideUserRateLimiter creates the per-user rate limiter
func ProvideUserRateLimiter(cfg *config.Config) *auth.UserRateLimiter {
	return auth.NewUserRateLimiter(cfg.UserRateLimit)
}

// ProvideAuthService creates the auth service
func ProvideAuthService(users ports.UserRepository, tokens *auth.JWTGenerator, logger *zap.Logger) *services.AuthService {
	return services.NewAuthService(users, tokens, logger)
}

// ProvideFriendService creates the friend service
func ProvideFriendService(users ports.UserRepository, requests ports.FriendRequestRepository, uow ports.FriendshipUnitOfWork, logger *zap.Logger) *services.FriendService {
	return services.NewFriendService(users, requests, uow, logger)
}

// ProvideGroupService creates the group service
func ProvideGroupService(groups ports.GroupRepository, users ports.UserRepository, messages ports.MessageRepository, logger *zap.Logger) *services.GroupService {
	return services.NewGroupService(groups, users, messages, logger)
}

// ProvideMessageService creates the message service
func ProvideMessageService(messages ports.MessageRepository, users ports.UserRepository, logger *zap.Logger) *services.MessageService {
	return services.NewMessageService(messages, users, logger)
}
