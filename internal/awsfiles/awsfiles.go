// Package awsfiles parses the AWS shared config and credentials files into
// profile records. Reads go through an mtime-gated file cache so repeated
// lookups within one request never touch the filesystem twice.
package awsfiles

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/filecache"
)

// ErrParse marks a malformed local file. Callers degrade to "no profiles
// from that source" rather than aborting the request.
var ErrParse = errors.New("malformed AWS file")

// StaticCredentials is one section of the shared credentials file.
type StaticCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      *time.Time
}

// HasKeys reports whether the section carries a usable key pair.
func (c StaticCredentials) HasKeys() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// ConfigSection is one profile section of the shared config file.
type ConfigSection struct {
	Name          string
	Region        string
	Output        string
	SSOSession    string
	SSOStartURL   string
	SSORegion     string
	SSOAccountID  string
	SSORoleName   string
	RoleARN       string
	SourceProfile string
}

// IsSSO reports whether the section carries an SSO marker.
func (s ConfigSection) IsSSO() bool {
	return s.SSOSession != "" || s.SSOStartURL != ""
}

// SSOSession is one [sso-session NAME] section of the shared config file.
type SSOSession struct {
	Name     string
	StartURL string
	Region   string
}

// Files reads the two AWS shared files through a common cache.
type Files struct {
	CredentialsPath string
	ConfigPath      string

	cache *filecache.Cache
}

func New(cache *filecache.Cache, credentialsPath, configPath string) *Files {
	return &Files{
		CredentialsPath: credentialsPath,
		ConfigPath:      configPath,
		cache:           cache,
	}
}

// Expiration convention written by credential-rotation tools:
//   # Expires 2024-11-10 15:30:00
var expiresRe = regexp.MustCompile(`Expires\s+(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2})`)

// Credentials parses the shared credentials file. A missing file is not an
// error; profiles are optional.
func (f *Files) Credentials() (map[string]StaticCredentials, error) {
	sections, err := f.load(f.CredentialsPath)
	if err != nil {
		return nil, err
	}

	out := make(map[string]StaticCredentials, len(sections))
	for _, sec := range sections {
		creds := StaticCredentials{
			AccessKeyID:     sec.keys["aws_access_key_id"],
			SecretAccessKey: sec.keys["aws_secret_access_key"],
			SessionToken:    sec.keys["aws_session_token"],
		}
		if exp := parseExpiration(sec); exp != nil {
			creds.Expiration = exp
		}
		out[sec.name] = creds
	}
	return out, nil
}

// Config parses the shared config file. Section names are unprefixed
// ("profile x" becomes "x", "default" stays as is); sso-session sections
// are returned separately so sso_session references can be resolved.
func (f *Files) Config() (map[string]ConfigSection, map[string]SSOSession, error) {
	sections, err := f.load(f.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	profiles := make(map[string]ConfigSection)
	sessions := make(map[string]SSOSession)
	for _, sec := range sections {
		switch {
		case strings.HasPrefix(sec.name, "sso-session "):
			name := strings.TrimPrefix(sec.name, "sso-session ")
			sessions[name] = SSOSession{
				Name:     name,
				StartURL: strings.TrimSuffix(sec.keys["sso_start_url"], "#"),
				Region:   sec.keys["sso_region"],
			}
		case strings.HasPrefix(sec.name, "profile "):
			name := strings.TrimPrefix(sec.name, "profile ")
			profiles[name] = newConfigSection(name, sec.keys)
		case sec.name == "default":
			profiles[sec.name] = newConfigSection(sec.name, sec.keys)
		default:
			// The config file convention requires the "profile " prefix for
			// everything except default; bare sections are still accepted
			// the way the AWS CLI accepts them in the credentials file.
			profiles[sec.name] = newConfigSection(sec.name, sec.keys)
		}
	}
	return profiles, sessions, nil
}

func newConfigSection(name string, keys map[string]string) ConfigSection {
	return ConfigSection{
		Name:          name,
		Region:        keys["region"],
		Output:        keys["output"],
		SSOSession:    keys["sso_session"],
		SSOStartURL:   strings.TrimSuffix(keys["sso_start_url"], "#"),
		SSORegion:     keys["sso_region"],
		SSOAccountID:  keys["sso_account_id"],
		SSORoleName:   keys["sso_role_name"],
		RoleARN:       keys["role_arn"],
		SourceProfile: keys["source_profile"],
	}
}

func parseExpiration(sec section) *time.Time {
	candidates := append([]string{sec.keys["aws_session_expiration"]}, sec.comments...)
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(c)); err == nil {
			return &t
		}
		if m := expiresRe.FindStringSubmatch(c); m != nil {
			stamp := strings.Replace(m[1], "T", " ", 1)
			if t, err := time.Parse("2006-01-02 15:04:05", stamp); err == nil {
				t = t.UTC()
				return &t
			}
		}
	}
	return nil
}

func (f *Files) load(path string) ([]section, error) {
	data, err := f.cache.Get(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return parseINI(path, data)
}
