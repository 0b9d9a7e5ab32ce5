// pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string
	HTTPAddr string // auth-service
	AppURL   string // public base URL of this app

	// Outbound token exchange
	ExchangeTimeout time.Duration

	// Redis & Postgres (Postgres wins when both are set)
	RedisURL    string
	DatabaseURL string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:             env("SHOPGATE_ENV", "dev"),
		HTTPAddr:        env("SHOPGATE_HTTP_ADDR", ":8080"),
		AppURL:          env("APP_URL", "https://localhost"),
		ExchangeTimeout: envDur("SHOPIFY_EXCHANGE_TIMEOUT_SEC", 15) * time.Second,
		RedisURL:        env("REDIS_URL", ""),
		DatabaseURL:     env("DATABASE_URL", ""),
	}
	if cfg.DatabaseURL == "" && cfg.RedisURL == "" {
		log.Println("[WARN] DATABASE_URL and REDIS_URL not set; using in-memory shop store for dev")
	}
	return cfg
}

// Shopify holds the app credentials and grant policy. It is re-read on every
// authorization so that changes apply without a restart.
type Shopify struct {
	APIKey          string   `yaml:"api_key"`
	APISecret       string   `yaml:"api_secret"`
	Scopes          []string `yaml:"api_scopes"`
	RedirectURI     string   `yaml:"api_redirect"`
	GrantMode       string   `yaml:"api_grant_mode"`
	MyshopifyDomain string   `yaml:"myshopify_domain"`
}

// LoadShopify reads the optional YAML file named by SHOPIFY_APP_CONFIG and then
// applies SHOPIFY_* environment variables on top of it.
func LoadShopify() (Shopify, error) {
	s := Shopify{}
	if path := os.Getenv("SHOPIFY_APP_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Shopify{}, err
		}
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return Shopify{}, err
		}
	}
	s.APIKey = env("SHOPIFY_API_KEY", s.APIKey)
	s.APISecret = env("SHOPIFY_API_SECRET", s.APISecret)
	if v := os.Getenv("SHOPIFY_API_SCOPES"); v != "" {
		s.Scopes = splitList(v)
	}
	if len(s.Scopes) == 0 {
		s.Scopes = []string{"read_products", "write_products"}
	}
	appURL := strings.TrimRight(env("APP_URL", "https://localhost"), "/")
	s.RedirectURI = env("SHOPIFY_API_REDIRECT", s.RedirectURI)
	if s.RedirectURI == "" {
		s.RedirectURI = appURL + "/authenticate"
	} else if strings.HasPrefix(s.RedirectURI, "/") {
		s.RedirectURI = appURL + s.RedirectURI
	}
	s.GrantMode = env("SHOPIFY_API_GRANT_MODE", s.GrantMode)
	if s.GrantMode == "" {
		s.GrantMode = "OFFLINE"
	}
	s.MyshopifyDomain = env("SHOPIFY_MYSHOPIFY_DOMAIN", s.MyshopifyDomain)
	if s.MyshopifyDomain == "" {
		s.MyshopifyDomain = "myshopify.com"
	}
	return s, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func envDur(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		i, _ := strconv.Atoi(v)
		return time.Duration(i)
	}
	return time.Duration(def)
}
