package memcache_fx

import (
	"context"

	"go.uber.org/fx"

	"scaffold/internal/config"
	"scaffold/internal/infra"
	"scaffold/pkg/logger"
	mem "scaffold/pkg/memcache"
)

var Module = fx.Provide(provideSignStore)

func provideSignStore(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (mem.SignStore, error) {
	if cfg.Redis.Addr == "" {
		log.Warn("redis not configured, link signs are kept in memory")
		return mem.NewMemorySignStore(), nil
	}

	client, err := infra.InitRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return client.Close() },
	})
	return mem.NewRedisSignStore(client), nil
}
