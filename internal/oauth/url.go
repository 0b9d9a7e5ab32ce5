package oauth

import (
	"net/url"
	"strings"
)

// BuildAuthorizeURL returns the consent page URL for domain. The query is
// assembled by hand because callers compare the exact string, so parameter
// order is client_id, scope, redirect_uri, then grant_options[] for PerUser.
func BuildAuthorizeURL(domain, clientID string, scopes []string, redirectURI string, mode GrantMode) string {
	var b strings.Builder
	b.WriteString("https://")
	b.WriteString(domain)
	b.WriteString("/admin/oauth/authorize?client_id=")
	b.WriteString(url.QueryEscape(clientID))
	b.WriteString("&scope=")
	b.WriteString(url.QueryEscape(strings.Join(scopes, ",")))
	b.WriteString("&redirect_uri=")
	b.WriteString(url.QueryEscape(redirectURI))
	if mode == PerUser {
		b.WriteString("&")
		b.WriteString(url.QueryEscape("grant_options[]"))
		b.WriteString("=per-user")
	}
	return b.String()
}
