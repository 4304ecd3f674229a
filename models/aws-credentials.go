package models

import "time"

// AWSCredentials holds temporary or long-term credentials for one profile.
type AWSCredentials struct {
	AccessKeyID     string     `json:"accessKeyId"`
	SecretAccessKey string     `json:"secretAccessKey"`
	SessionToken    string     `json:"sessionToken,omitempty"`
	Expiration      *time.Time `json:"expiration,omitempty"`
}

// Temporary reports whether the credentials carry a session token and can
// be exchanged at the federation endpoint. Long-term keys never leave the
// process.
func (c *AWSCredentials) Temporary() bool {
	return c.SessionToken != ""
}
