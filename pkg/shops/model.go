package shops

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a storefront that has installed, or is installing, the app.
type Shop struct {
	ID          string     // uuid
	Domain      string     // normalized myshopify domain, unique
	AccessToken string     // offline access token; empty until the first exchange
	DeletedAt   *time.Time // soft-delete marker set on uninstall
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New returns an unsaved shop bound to domain.
func New(domain string) Shop {
	return Shop{ID: uuid.NewString(), Domain: domain}
}

func (s Shop) HasOfflineToken() bool { return s.AccessToken != "" }

func (s Shop) IsDeleted() bool { return s.DeletedAt != nil }

// Reinstate records a freshly exchanged token. A successful exchange means the
// shop installed the app again, so the soft-delete marker is cleared.
func (s *Shop) Reinstate(token string) {
	s.AccessToken = token
	s.DeletedAt = nil
}
