package models

import (
	"encoding/json"
	"time"
)

// ProfileKind is the closed set of profile classifications.
type ProfileKind int

const (
	KindUnknown ProfileKind = iota
	KindStaticCredentials
	KindSSOProfile
	KindRoleAssumption
)

func (k ProfileKind) String() string {
	switch k {
	case KindStaticCredentials:
		return "static"
	case KindSSOProfile:
		return "sso"
	case KindRoleAssumption:
		return "role"
	default:
		return "unknown"
	}
}

func (k ProfileKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Profile is one aggregated AWS profile as reported to the extension.
// Field names follow the wire contract expected by the popup.
type Profile struct {
	Name           string      `json:"name"`
	Kind           ProfileKind `json:"kind"`
	HasCredentials bool        `json:"has_credentials"`
	Expiration     *time.Time  `json:"expiration"`
	Expired        bool        `json:"expired"`
	IsSSO          bool        `json:"is_sso"`
	Color          string      `json:"color"`
	Icon           string      `json:"icon"`

	SSOStartURL  string `json:"sso_start_url,omitempty"`
	SSOSession   string `json:"sso_session,omitempty"`
	SSORegion    string `json:"sso_region,omitempty"`
	SSOAccountID string `json:"sso_account_id,omitempty"`
	SSORoleName  string `json:"sso_role_name,omitempty"`
	AWSRegion    string `json:"aws_region,omitempty"`
}
