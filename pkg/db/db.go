// pkg/db/db.go
package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shopgate/pkg/config"
	"shopgate/pkg/shops"
)

func MustConnect(cfg config.Config, log *zap.SugaredLogger) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		return nil
	}
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("pg connect", "err", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalw("pg ping", "err", err)
	}
	log.Infow("postgres ready", "host", redactDSN(cfg.DatabaseURL))
	return pool
}

func MustRedis(cfg config.Config, log *zap.SugaredLogger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalw("redis parse", "err", err)
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("redis ping", "err", err)
	}
	log.Infow("redis ready", "addr", opts.Addr)
	return cli
}

// MustShopStore opens the shop store: Postgres when DATABASE_URL is set,
// Redis when REDIS_URL is set, in-memory otherwise. The returned func
// releases the underlying connections.
func MustShopStore(cfg config.Config, log *zap.SugaredLogger) (shops.Store, func()) {
	if pool := MustConnect(cfg, log); pool != nil {
		if err := shops.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalw("schema", "err", err)
		}
		return shops.NewPostgresStore(pool, log), pool.Close
	}
	if rdb := MustRedis(cfg, log); rdb != nil {
		return shops.NewRedisStore(rdb, log), func() { _ = rdb.Close() }
	}
	log.Warnw("no database configured, shops live in memory")
	return shops.NewMemoryStoreFromEnv(log), func() {}
}

func redactDSN(dsn string) string {
	if i := strings.LastIndex(dsn, "@"); i > 0 {
		scheme := ""
		if j := strings.Index(dsn, "://"); j > 0 && j < i {
			scheme = dsn[:j+3]
		}
		return scheme + "***@" + dsn[i+1:]
	}
	return dsn
}
