// Package profiles produces the single source of truth profile list for a
// request, merging parser output with SSO token state.
package profiles

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/awsfiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

// ErrProfileNotFound marks an openProfile request naming a profile that no
// source knows about.
var ErrProfileNotFound = errors.New("profile not found")

// TokenSource yields cached SSO tokens; nil token means no usable token.
type TokenSource interface {
	Token(ctx context.Context, sessionName, startURL string) (*models.SSOToken, error)
}

// Aggregator merges the shared config and credentials files with SSO token
// state into one deduplicated profile list.
type Aggregator struct {
	fs           afero.Fs
	files        *awsfiles.Files
	tokens       TokenSource
	meta         *Metadata
	suppressPath string
	logger       *slog.Logger
	now          func() time.Time
}

func NewAggregator(fs afero.Fs, files *awsfiles.Files, tokens TokenSource, meta *Metadata, suppressPath string, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		fs:           fs,
		files:        files,
		tokens:       tokens,
		meta:         meta,
		suppressPath: suppressPath,
		logger:       logger,
		now:          time.Now,
	}
}

// suppressed reports whether the sentinel file disabling SSO enumeration
// exists. Checked once per request, before any SSO-specific work.
func (a *Aggregator) suppressed() bool {
	_, err := a.fs.Stat(a.suppressPath)
	return err == nil
}

// List aggregates every known profile. enrichSSO controls whether SSO
// token expiry is looked up (the slow path); the fast path reports SSO
// profiles without credential state so the popup renders instantly.
//
// A parse failure in one file degrades to no profiles from that source;
// the failure is returned as a warning rather than aborting the request.
func (a *Aggregator) List(ctx context.Context, enrichSSO bool) ([]models.Profile, []string) {
	suppress := a.suppressed()
	if suppress {
		a.logger.Info("sso suppression flag present, skipping sso enumeration", "path", a.suppressPath)
	}

	var warnings []string

	creds, err := a.files.Credentials()
	if err != nil {
		a.logger.Error("credentials file unusable", "err", err)
		warnings = append(warnings, "credentials file unusable: "+err.Error())
		creds = nil
	}

	var cfg map[string]awsfiles.ConfigSection
	var sessions map[string]awsfiles.SSOSession
	cfg, sessions, err = a.files.Config()
	if err != nil {
		a.logger.Error("config file unusable", "err", err)
		warnings = append(warnings, "config file unusable: "+err.Error())
		cfg, sessions = nil, nil
	}

	names := make(map[string]struct{}, len(creds)+len(cfg))
	for name := range creds {
		names[name] = struct{}{}
	}
	for name := range cfg {
		names[name] = struct{}{}
	}

	out := make([]models.Profile, 0, len(names))
	for name := range names {
		p := a.build(ctx, name, cfg, creds, sessions, suppress, enrichSSO)
		if p == nil {
			continue
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, warnings
}

func (a *Aggregator) build(
	ctx context.Context,
	name string,
	cfg map[string]awsfiles.ConfigSection,
	creds map[string]awsfiles.StaticCredentials,
	sessions map[string]awsfiles.SSOSession,
	suppress, enrichSSO bool,
) *models.Profile {
	var section *awsfiles.ConfigSection
	if s, ok := cfg[name]; ok {
		section = &s
	}
	var static *awsfiles.StaticCredentials
	if c, ok := creds[name]; ok {
		static = &c
	}

	kind := Classify(section, static, suppress)

	p := &models.Profile{Name: name, Kind: kind}
	switch kind {
	case models.KindUnknown:
		return nil

	case models.KindStaticCredentials:
		p.HasCredentials = static.HasKeys()
		if static.Expiration != nil {
			exp := *static.Expiration
			p.Expiration = &exp
			p.Expired = exp.Before(a.now())
			if p.Expired {
				p.HasCredentials = false
			}
		}

	case models.KindRoleAssumption:
		p.AWSRegion = section.Region
		if section.SourceProfile != "" {
			if src, ok := creds[section.SourceProfile]; ok && src.HasKeys() {
				p.HasCredentials = src.Expiration == nil || src.Expiration.After(a.now())
			}
		}

	case models.KindSSOProfile:
		p.IsSSO = true
		p.SSOStartURL = section.SSOStartURL
		p.SSOSession = section.SSOSession
		p.SSORegion = section.SSORegion
		p.SSOAccountID = section.SSOAccountID
		p.SSORoleName = section.SSORoleName
		p.AWSRegion = section.Region
		if sess, ok := sessions[section.SSOSession]; ok {
			if p.SSOStartURL == "" {
				p.SSOStartURL = sess.StartURL
			}
			if p.SSORegion == "" {
				p.SSORegion = sess.Region
			}
		}
		if enrichSSO {
			a.enrich(ctx, p)
		}
	}

	a.meta.Apply(p)
	return p
}

// enrich stamps SSO token expiry onto the profile. Token absence is not an
// error; it just means the user has to run a login.
func (a *Aggregator) enrich(ctx context.Context, p *models.Profile) {
	tok, err := a.tokens.Token(ctx, p.SSOSession, p.SSOStartURL)
	if err != nil {
		a.logger.Warn("sso token lookup failed", "profile", p.Name, "err", err)
	}
	if tok == nil {
		p.Expired = true
		p.HasCredentials = false
		return
	}
	exp := tok.ExpiresAt
	p.Expiration = &exp
	p.Expired = exp.Before(a.now())
	p.HasCredentials = !p.Expired
}

// Resolved carries everything openProfile needs to mint credentials for
// one profile.
type Resolved struct {
	Profile           models.Profile
	Config            *awsfiles.ConfigSection
	Credentials       *awsfiles.StaticCredentials
	SourceCredentials *awsfiles.StaticCredentials
}

// Resolve classifies a single named profile, with SSO enrichment. Parse
// failures are fatal here: minting credentials from a half-read file is
// worse than reporting the problem.
func (a *Aggregator) Resolve(ctx context.Context, name string) (*Resolved, error) {
	suppress := a.suppressed()

	creds, err := a.files.Credentials()
	if err != nil {
		return nil, err
	}
	cfg, sessions, err := a.files.Config()
	if err != nil {
		return nil, err
	}

	if _, inCfg := cfg[name]; !inCfg {
		if _, inCreds := creds[name]; !inCreds {
			return nil, ErrProfileNotFound
		}
	}

	p := a.build(ctx, name, cfg, creds, sessions, suppress, true)
	if p == nil {
		return nil, ErrProfileNotFound
	}

	res := &Resolved{Profile: *p}
	if s, ok := cfg[name]; ok {
		res.Config = &s
	}
	if c, ok := creds[name]; ok {
		res.Credentials = &c
	}
	if res.Config != nil && res.Config.SourceProfile != "" {
		if src, ok := creds[res.Config.SourceProfile]; ok {
			res.SourceCredentials = &src
		}
	}
	return res, nil
}
