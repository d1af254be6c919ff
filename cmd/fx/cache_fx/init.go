package cache_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"tuitionledger/internal/infra"
	"tuitionledger/internal/services"
)

var Module = fx.Provide(
	provideRedis, provideViewCache)

func provideRedis() *redis.Client {
	return infra.InitRedis()
}

func provideViewCache(client *redis.Client) *services.PublicViewCache {
	return services.NewPublicViewCache(client)
}
