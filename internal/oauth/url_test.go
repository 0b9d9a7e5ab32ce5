package oauth

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultScopes = []string{"read_products", "write_products"}

func TestBuildAuthorizeURL_Offline(t *testing.T) {
	got := BuildAuthorizeURL("non-existant.myshopify.com", "KEY", defaultScopes, "https://localhost/authenticate", Offline)
	assert.Equal(t,
		"https://non-existant.myshopify.com/admin/oauth/authorize?client_id=KEY&scope=read_products%2Cwrite_products&redirect_uri=https%3A%2F%2Flocalhost%2Fauthenticate",
		got)
	assert.NotContains(t, got, "grant_options")
}

func TestBuildAuthorizeURL_PerUser(t *testing.T) {
	got := BuildAuthorizeURL("acme.myshopify.com", "KEY", defaultScopes, "https://localhost/authenticate", PerUser)
	assert.True(t, strings.HasSuffix(got, "&redirect_uri=https%3A%2F%2Flocalhost%2Fauthenticate&grant_options%5B%5D=per-user"), got)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "acme.myshopify.com", u.Host)
	assert.Equal(t, "/admin/oauth/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "KEY", q.Get("client_id"))
	assert.Equal(t, "read_products,write_products", q.Get("scope"))
	assert.Equal(t, "https://localhost/authenticate", q.Get("redirect_uri"))
	assert.Equal(t, "per-user", q.Get("grant_options[]"))
}

func TestBuildAuthorizeURL_Deterministic(t *testing.T) {
	for _, mode := range []GrantMode{Offline, PerUser} {
		a := BuildAuthorizeURL("acme.myshopify.com", "k&y", []string{"b", "a"}, "https://app.test/cb?x=1", mode)
		b := BuildAuthorizeURL("acme.myshopify.com", "k&y", []string{"b", "a"}, "https://app.test/cb?x=1", mode)
		assert.Equal(t, a, b)
		// scope order is preserved, not sorted
		assert.Contains(t, a, "scope=b%2Ca&")
		assert.Contains(t, a, "client_id=k%26y&")
	}
}

func TestParseGrantMode(t *testing.T) {
	cases := map[string]GrantMode{
		"":         Offline,
		"offline":  Offline,
		"OFFLINE":  Offline,
		"PERUSER":  PerUser,
		"per-user": PerUser,
		" peruser": PerUser,
	}
	for in, want := range cases {
		got, err := ParseGrantMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseGrantMode("online")
	assert.Error(t, err)
}
