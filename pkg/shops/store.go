package shops

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("shop not found")

type Store interface {
	// FindByDomain returns the shop for domain, soft-deleted or not.
	// ErrNotFound is returned when no row exists.
	FindByDomain(ctx context.Context, domain string) (Shop, error)
	// Save creates the shop or updates the existing row with the same domain.
	// Token and DeletedAt are written exactly as given.
	Save(ctx context.Context, shop Shop) error
}
