package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearShopifyEnv(t *testing.T) {
	for _, k := range []string{
		"SHOPIFY_APP_CONFIG", "SHOPIFY_API_KEY", "SHOPIFY_API_SECRET", "SHOPIFY_API_SCOPES",
		"SHOPIFY_API_REDIRECT", "SHOPIFY_API_GRANT_MODE", "SHOPIFY_MYSHOPIFY_DOMAIN", "APP_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadShopify_Defaults(t *testing.T) {
	clearShopifyEnv(t)

	s, err := LoadShopify()
	require.NoError(t, err)
	assert.Equal(t, []string{"read_products", "write_products"}, s.Scopes)
	assert.Equal(t, "https://localhost/authenticate", s.RedirectURI)
	assert.Equal(t, "OFFLINE", s.GrantMode)
	assert.Equal(t, "myshopify.com", s.MyshopifyDomain)
}

func TestLoadShopify_EnvOverrides(t *testing.T) {
	clearShopifyEnv(t)
	t.Setenv("SHOPIFY_API_KEY", "key")
	t.Setenv("SHOPIFY_API_SECRET", "secret")
	t.Setenv("SHOPIFY_API_SCOPES", " read_orders , write_orders,")
	t.Setenv("SHOPIFY_API_GRANT_MODE", "PERUSER")
	t.Setenv("APP_URL", "https://app.example.com/")
	t.Setenv("SHOPIFY_API_REDIRECT", "/auth/callback")

	s, err := LoadShopify()
	require.NoError(t, err)
	assert.Equal(t, "key", s.APIKey)
	assert.Equal(t, "secret", s.APISecret)
	assert.Equal(t, []string{"read_orders", "write_orders"}, s.Scopes)
	assert.Equal(t, "PERUSER", s.GrantMode)
	assert.Equal(t, "https://app.example.com/auth/callback", s.RedirectURI)
}

func TestLoadShopify_YAMLOverlay(t *testing.T) {
	clearShopifyEnv(t)
	path := filepath.Join(t.TempDir(), "shopify.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_key: from-file
api_secret: file-secret
api_scopes: [read_themes]
api_redirect: https://shop.example.com/authenticate
api_grant_mode: PERUSER
`), 0o600))
	t.Setenv("SHOPIFY_APP_CONFIG", path)
	t.Setenv("SHOPIFY_API_KEY", "from-env")

	s, err := LoadShopify()
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.APIKey)
	assert.Equal(t, "file-secret", s.APISecret)
	assert.Equal(t, []string{"read_themes"}, s.Scopes)
	assert.Equal(t, "https://shop.example.com/authenticate", s.RedirectURI)
	assert.Equal(t, "PERUSER", s.GrantMode)
}

func TestLoadShopify_MissingFile(t *testing.T) {
	clearShopifyEnv(t)
	t.Setenv("SHOPIFY_APP_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadShopify()
	assert.Error(t, err)
}

func TestEnvDur(t *testing.T) {
	t.Setenv("SHOPGATE_TEST_DUR", "7")
	assert.Equal(t, 7*time.Second, envDur("SHOPGATE_TEST_DUR", 1)*time.Second)
	assert.Equal(t, 3*time.Second, envDur("SHOPGATE_TEST_DUR_UNSET", 3)*time.Second)
}
