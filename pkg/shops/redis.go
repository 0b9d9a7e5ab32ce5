// pkg/shops/redis.go
package shops

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisStore keeps one hash per shop at shop:<domain>.
type redisStore struct {
	rdb redis.Cmdable
	log *zap.SugaredLogger
}

func NewRedisStore(rdb redis.Cmdable, log *zap.SugaredLogger) Store {
	return &redisStore{rdb: rdb, log: log}
}

func shopKey(domain string) string { return "shop:" + domain }

func (r *redisStore) FindByDomain(ctx context.Context, domain string) (Shop, error) {
	h, err := r.rdb.HGetAll(ctx, shopKey(domain)).Result()
	if err != nil {
		return Shop{}, err
	}
	if len(h) == 0 {
		return Shop{}, ErrNotFound
	}
	s := Shop{ID: h["id"], Domain: h["domain"], AccessToken: h["access_token"]}
	if s.Domain == "" {
		s.Domain = domain
	}
	s.CreatedAt = parseTime(h["created_at"])
	s.UpdatedAt = parseTime(h["updated_at"])
	if v := h["deleted_at"]; v != "" {
		ts := parseTime(v)
		s.DeletedAt = &ts
	}
	return s, nil
}

// Save writes every field in one HSET, so an empty deleted_at clears the marker.
func (r *redisStore) Save(ctx context.Context, shop Shop) error {
	key := shopKey(shop.Domain)
	now := time.Now().UTC()
	fields := map[string]any{
		"domain":       shop.Domain,
		"access_token": shop.AccessToken,
		"deleted_at":   "",
		"updated_at":   now.Format(time.RFC3339Nano),
	}
	if shop.DeletedAt != nil {
		fields["deleted_at"] = shop.DeletedAt.UTC().Format(time.RFC3339Nano)
	}
	if err := r.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	// id and created_at are set only once per shop
	if shop.ID == "" {
		shop.ID = New(shop.Domain).ID
	}
	if err := r.rdb.HSetNX(ctx, key, "id", shop.ID).Err(); err != nil {
		return err
	}
	if err := r.rdb.HSetNX(ctx, key, "created_at", now.Format(time.RFC3339Nano)).Err(); err != nil {
		return err
	}
	r.log.Debugw("shop saved", "domain", shop.Domain)
	return nil
}

func parseTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}
