// pkg/shops/memory.go
package shops

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

type memStore struct {
	log      *zap.SugaredLogger
	mu       sync.RWMutex
	byDomain map[string]Shop
}

func NewMemoryStore(log *zap.SugaredLogger) Store {
	return &memStore{log: log, byDomain: map[string]Shop{}}
}

// NewMemoryStoreFromEnv seeds the store from SHOP_SEED_JSON:
//
//	[{"domain":"acme.myshopify.com","access_token":"shpat_...","deleted":false}]
func NewMemoryStoreFromEnv(log *zap.SugaredLogger) Store {
	m := &memStore{log: log, byDomain: map[string]Shop{}}
	seed := os.Getenv("SHOP_SEED_JSON")
	if seed == "" {
		return m
	}
	var entries []struct {
		Domain      string `json:"domain"`
		AccessToken string `json:"access_token"`
		Deleted     bool   `json:"deleted"`
	}
	if err := json.Unmarshal([]byte(seed), &entries); err != nil {
		log.Warnw("shop seed ignored", "err", err)
		return m
	}
	now := time.Now().UTC()
	for _, e := range entries {
		s := New(e.Domain)
		s.AccessToken = e.AccessToken
		s.CreatedAt, s.UpdatedAt = now, now
		if e.Deleted {
			ts := now
			s.DeletedAt = &ts
		}
		m.byDomain[e.Domain] = s
	}
	log.Infow("shop store seeded", "count", len(entries))
	return m
}

func (m *memStore) FindByDomain(ctx context.Context, domain string) (Shop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.byDomain[domain]; ok {
		return s, nil
	}
	return Shop{}, ErrNotFound
}

func (m *memStore) Save(ctx context.Context, shop Shop) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if prev, ok := m.byDomain[shop.Domain]; ok {
		shop.ID = prev.ID
		shop.CreatedAt = prev.CreatedAt
	} else if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now
	m.byDomain[shop.Domain] = shop
	return nil
}
