package authorize

import (
	"shopgate/internal/oauth"
	"shopgate/pkg/config"
	"shopgate/pkg/shops"
)

// Settings is the app configuration one Authorize call runs with.
type Settings struct {
	APIKey       string
	APISecret    string
	Scopes       []string
	RedirectURI  string
	GrantMode    oauth.GrantMode // configured default, see ResolveGrantMode
	DomainSuffix string
}

func (s Settings) Credentials() oauth.Credentials {
	return oauth.Credentials{ClientID: s.APIKey, ClientSecret: s.APISecret}
}

func SettingsFrom(c config.Shopify) (Settings, error) {
	mode, err := oauth.ParseGrantMode(c.GrantMode)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		APIKey:       c.APIKey,
		APISecret:    c.APISecret,
		Scopes:       append([]string(nil), c.Scopes...),
		RedirectURI:  c.RedirectURI,
		GrantMode:    mode,
		DomainSuffix: c.MyshopifyDomain,
	}, nil
}

// LoadSettings reads the environment (and optional YAML file) afresh.
func LoadSettings() (Settings, error) {
	c, err := config.LoadShopify()
	if err != nil {
		return Settings{}, err
	}
	return SettingsFrom(c)
}

// ResolveGrantMode picks the grant for this pass. Under a PerUser default a
// shop must first hold an offline token, so a missing shop or a shop without
// a token gets Offline; once the token exists PerUser is used.
func ResolveGrantMode(configured oauth.GrantMode, snapshot *shops.Shop) oauth.GrantMode {
	if configured != oauth.PerUser {
		return oauth.Offline
	}
	if snapshot == nil || !snapshot.HasOfflineToken() {
		return oauth.Offline
	}
	return oauth.PerUser
}
