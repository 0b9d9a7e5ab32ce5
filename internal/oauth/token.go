package oauth

// AccessToken is the token endpoint response. The associated user fields are
// only present for per-user grants and are passed through untouched.
type AccessToken struct {
	AccessToken         string          `json:"access_token"`
	Scope               string          `json:"scope"`
	ExpiresIn           int64           `json:"expires_in,omitempty"`
	AssociatedUserScope string          `json:"associated_user_scope,omitempty"`
	AssociatedUser      *AssociatedUser `json:"associated_user,omitempty"`
}

type AssociatedUser struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	AccountOwner  bool   `json:"account_owner"`
	Locale        string `json:"locale"`
	Collaborator  bool   `json:"collaborator"`
}

// PerUser reports whether the provider answered with a per-user grant.
func (t AccessToken) PerUser() bool { return t.AssociatedUser != nil }

// Credentials identify the app to the provider.
type Credentials struct {
	ClientID     string
	ClientSecret string
}
