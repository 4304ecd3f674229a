package models

import "time"

// SSOToken mirrors one JSON record in ~/.aws/sso/cache. Fields match the
// AWS CLI cache layout so tokens issued by other tools are reusable.
type SSOToken struct {
	StartURL     string    `json:"startUrl,omitempty"`
	Region       string    `json:"region,omitempty"`
	AccessToken  string    `json:"accessToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	ClientID     string    `json:"clientId,omitempty"`
	ClientSecret string    `json:"clientSecret,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
}

// Valid reports whether the token is usable at the given instant. A token
// without an access token or past its expiry is treated as absent.
func (t *SSOToken) Valid(now time.Time) bool {
	return t != nil && t.AccessToken != "" && t.ExpiresAt.After(now)
}
