//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/AlenesK/howudoin/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDynamoDBClient,
	ProvideTableConfig,
	ProvideMemoryStore,
	ProvideUserRepository,
	ProvideFriendRequestRepository,
	ProvideGroupRepository,
	ProvideMessageRepository,
	ProvideFriendshipUnitOfWork,
	ProvideJWTConfig,
	ProvideJWTGenerator,
	ProvideJWTValidator,
	ProvideIPRateLimiter,
	ProvideUserRateLimiter,
	ProvideAuthService,
	ProvideFriendService,
	ProvideGroupService,
	ProvideMessageService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
