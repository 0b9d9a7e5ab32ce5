package authorize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"shopgate/internal/oauth"
	"shopgate/pkg/shops"
)

var (
	ErrTenantLookupFailed = errors.New("shop lookup failed")
	ErrExchangeFailed     = errors.New("token exchange failed")
	// ErrPersistenceFailed means the provider considers the shop authorized
	// but the local record still holds the previous state.
	ErrPersistenceFailed = errors.New("shop persistence failed")
)

// Result tells the caller what to do next. When Completed is false the
// browser must be sent to URL to give consent.
type Result struct {
	URL       string `json:"url,omitempty"`
	Completed bool   `json:"completed"`
}

// Exchanger trades an authorization code for a token.
type Exchanger interface {
	Exchange(ctx context.Context, creds oauth.Credentials, domain, code string) (oauth.AccessToken, error)
}

// Service authorizes shops. It holds no per-shop state; every call starts
// from what the store currently has, so lost or repeated redirects heal.
type Service struct {
	store    shops.Store
	exchange Exchanger
	metrics  *Metrics
	log      *zap.SugaredLogger
	tracer   trace.Tracer
}

func NewService(store shops.Store, exchange Exchanger, metrics *Metrics, log *zap.SugaredLogger) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Service{
		store:    store,
		exchange: exchange,
		metrics:  metrics,
		log:      log,
		tracer:   otel.Tracer("shopgate/authorize"),
	}
}

// Authorize begins consent when code is empty and completes it otherwise.
// domain must already be normalized.
func (s *Service) Authorize(ctx context.Context, set Settings, domain, code string) (Result, error) {
	phase := phaseBegin
	if code != "" {
		phase = phaseComplete
	}
	ctx, span := s.tracer.Start(ctx, "AuthorizeShop", trace.WithAttributes(
		attribute.String("shop.domain", domain),
		attribute.String("authorize.phase", phase),
	))
	defer span.End()

	snapshot, err := s.lookup(ctx, domain)
	if err != nil {
		s.metrics.observe(phase, "unknown", resultLookupFailed)
		s.log.Errorw("shop lookup failed", "shop", domain, "err", err)
		return Result{}, spanError(span, fmt.Errorf("%w: %s: %w", ErrTenantLookupFailed, domain, err))
	}

	mode := ResolveGrantMode(set.GrantMode, snapshot)
	span.SetAttributes(attribute.String("oauth.grant_mode", string(mode)))

	if code == "" {
		url := oauth.BuildAuthorizeURL(domain, set.APIKey, set.Scopes, set.RedirectURI, mode)
		s.metrics.observe(phase, string(mode), resultRedirect)
		s.log.Infow("consent started", "shop", domain, "grant_mode", mode, "known", snapshot != nil)
		return Result{URL: url}, nil
	}

	shop := shops.New(domain)
	if snapshot != nil {
		shop = *snapshot
	}

	start := time.Now()
	tok, err := s.exchange.Exchange(ctx, set.Credentials(), domain, code)
	s.metrics.exchangeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.observe(phase, string(mode), resultExchangeFailed)
		s.log.Warnw("code exchange failed", "shop", domain, "err", err)
		return Result{}, spanError(span, fmt.Errorf("%w: %w", ErrExchangeFailed, err))
	}

	reinstated := shop.IsDeleted()
	shop.Reinstate(tok.AccessToken)
	if err := s.store.Save(ctx, shop); err != nil {
		s.metrics.observe(phase, string(mode), resultPersistenceFailed)
		s.log.Errorw("provider authorized shop but save failed; stored token is stale", "shop", domain, "err", err)
		return Result{}, spanError(span, fmt.Errorf("%w: %s: %w", ErrPersistenceFailed, domain, err))
	}

	s.metrics.observe(phase, string(mode), resultCompleted)
	s.log.Infow("shop authorized", "shop", domain, "grant_mode", mode, "reinstated", reinstated, "per_user", tok.PerUser())
	return Result{Completed: true}, nil
}

// lookup returns nil, nil when the shop does not exist yet.
func (s *Service) lookup(ctx context.Context, domain string) (*shops.Shop, error) {
	shop, err := s.store.FindByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, shops.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
