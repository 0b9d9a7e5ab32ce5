// pkg/shops/postgres.go
package shops

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DBTX is the subset of *pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgStore implements Store backed by PostgreSQL.
type pgStore struct {
	db  DBTX               // Connection pool to PostgreSQL
	log *zap.SugaredLogger // Logger for diagnostic output
}

// NewPostgresStore constructs a PostgreSQL-backed shop store.
func NewPostgresStore(db DBTX, log *zap.SugaredLogger) Store {
	return &pgStore{db: db, log: log}
}

// EnsureSchema creates the shops table if it does not already exist.
// Safe to call repeatedly (idempotent).
func EnsureSchema(ctx context.Context, db DBTX) error {
	_, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shops (
  id uuid PRIMARY KEY,
  domain text NOT NULL UNIQUE,
  access_token text,
  deleted_at timestamptz,
  created_at timestamptz NOT NULL DEFAULT NOW(),
  updated_at timestamptz NOT NULL DEFAULT NOW()
);
-- Backfill / ensure columns exist (for upgrades)
ALTER TABLE shops ADD COLUMN IF NOT EXISTS access_token text;
ALTER TABLE shops ADD COLUMN IF NOT EXISTS deleted_at timestamptz;
`)
	return err
}

const selectShop = `SELECT id, domain, COALESCE(access_token,''), deleted_at, created_at, updated_at FROM shops WHERE domain=$1`

// FindByDomain deliberately has no deleted_at filter.
func (p *pgStore) FindByDomain(ctx context.Context, domain string) (Shop, error) {
	var s Shop
	var deletedAt *time.Time
	err := p.db.QueryRow(ctx, selectShop, domain).Scan(&s.ID, &s.Domain, &s.AccessToken, &deletedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Shop{}, ErrNotFound
		}
		return Shop{}, err
	}
	s.DeletedAt = deletedAt
	return s, nil
}

const upsertShop = `INSERT INTO shops(id,domain,access_token,deleted_at)
  VALUES ($1,$2,$3,$4)
  ON CONFLICT (domain) DO UPDATE SET access_token=EXCLUDED.access_token,deleted_at=EXCLUDED.deleted_at,updated_at=NOW()`

// Save upserts the shop keyed on domain; the stored id of an existing row is kept.
func (p *pgStore) Save(ctx context.Context, shop Shop) error {
	id := shop.ID
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	tag, err := p.db.Exec(ctx, upsertShop, id, shop.Domain, nullIfEmpty(shop.AccessToken), shop.DeletedAt)
	if err != nil {
		return err
	}
	p.log.Debugw("shop saved", "domain", shop.Domain, "rows", tag.RowsAffected())
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
