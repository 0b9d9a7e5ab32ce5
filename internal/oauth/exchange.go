package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrExchangeFailed = errors.New("token exchange failed")

// ExchangeError is returned for every failed exchange, whatever the cause.
// It matches ErrExchangeFailed with errors.Is.
type ExchangeError struct {
	Domain string
	Status int // 0 when no response was received
	Err    error
}

func (e *ExchangeError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("token exchange for %s: status %d: %v", e.Domain, e.Status, e.Err)
	}
	return fmt.Sprintf("token exchange for %s: %v", e.Domain, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

func (e *ExchangeError) Is(target error) bool { return target == ErrExchangeFailed }

// ExchangeClient trades an authorization code for an access token. It never
// retries; a failed exchange is reported to the caller as is.
type ExchangeClient struct {
	httpClient *resty.Client
	tokenURL   func(domain string) string
	log        *zap.SugaredLogger
}

type Option func(*ExchangeClient)

// WithTokenURL overrides where the code is posted, e.g. to point at a test server.
func WithTokenURL(f func(domain string) string) Option {
	return func(c *ExchangeClient) { c.tokenURL = f }
}

func WithTimeout(d time.Duration) Option {
	return func(c *ExchangeClient) { c.httpClient.SetTimeout(d) }
}

func NewExchangeClient(log *zap.SugaredLogger, opts ...Option) *ExchangeClient {
	client := resty.New().
		SetTimeout(15*time.Second).
		SetRetryCount(0).
		SetLogger(log).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &ExchangeClient{
		httpClient: client,
		tokenURL:   DefaultTokenURL,
		log:        log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func DefaultTokenURL(domain string) string {
	return "https://" + domain + "/admin/oauth/access_token"
}

func (c *ExchangeClient) Exchange(ctx context.Context, creds Credentials, domain, code string) (AccessToken, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"client_id":     creds.ClientID,
			"client_secret": creds.ClientSecret,
			"code":          code,
		}).
		Post(c.tokenURL(domain))
	if err != nil {
		c.log.Warnw("token exchange transport error", "shop", domain, "err", err)
		return AccessToken{}, &ExchangeError{Domain: domain, Err: err}
	}
	if !resp.IsSuccess() {
		c.log.Warnw("token exchange rejected", "shop", domain, "status", resp.StatusCode())
		return AccessToken{}, &ExchangeError{Domain: domain, Status: resp.StatusCode(), Err: errors.New(resp.Status())}
	}

	var tok AccessToken
	if err := json.Unmarshal(resp.Body(), &tok); err != nil {
		return AccessToken{}, &ExchangeError{Domain: domain, Status: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if tok.AccessToken == "" {
		return AccessToken{}, &ExchangeError{Domain: domain, Status: resp.StatusCode(), Err: errors.New("response has no access_token")}
	}
	c.log.Infow("token exchanged", "shop", domain, "scope", tok.Scope, "per_user", tok.PerUser())
	return tok, nil
}
