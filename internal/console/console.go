// Package console converts a profile's credentials into a signed AWS
// Console federation URL. Credentials never leave the process except as
// the short-lived federation exchange with AWS itself, and no credential
// value is ever logged.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/profiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

var (
	// ErrCredentialsUnavailable means no usable credentials or token exist
	// for the requested profile. Distinct from a network failure; the
	// caller should tell the user to log in, not retry.
	ErrCredentialsUnavailable = errors.New("no usable credentials for profile")

	// ErrFederation means an AWS endpoint rejected the exchange or the
	// network failed. Re-issuing openProfile is a legitimate retry.
	ErrFederation = errors.New("federation exchange failed")
)

// SSOAPI is the slice of the AWS SSO portal client the generator uses.
type SSOAPI interface {
	GetRoleCredentials(ctx context.Context, params *sso.GetRoleCredentialsInput, optFns ...func(*sso.Options)) (*sso.GetRoleCredentialsOutput, error)
}

// STSAPI is the slice of the STS client the generator uses.
type STSAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// Generator builds console federation URLs for resolved profiles.
type Generator struct {
	tokens     profiles.TokenSource
	federation *federationClient
	ssoClient  func(ctx context.Context, region string) (SSOAPI, error)
	stsClient  func(ctx context.Context, region string, creds *awsStaticCreds) (STSAPI, error)
	logger     *slog.Logger
	timeout    time.Duration
}

type Options struct {
	FederationEndpoint string
	Issuer             string
	SessionDuration    time.Duration
	Timeout            time.Duration
}

func NewGenerator(tokens profiles.TokenSource, opts Options, logger *slog.Logger) *Generator {
	if opts.FederationEndpoint == "" {
		opts.FederationEndpoint = defaultFederationEndpoint
	}
	if opts.Issuer == "" {
		opts.Issuer = defaultIssuer
	}
	if opts.SessionDuration == 0 {
		opts.SessionDuration = defaultSessionDuration
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &Generator{
		tokens:     tokens,
		federation: newFederationClient(opts),
		ssoClient:  newSSOClient,
		stsClient:  newSTSClient,
		logger:     logger,
		timeout:    opts.Timeout,
	}
}

// ConsoleURL produces the signed console URL for a resolved profile.
// region and destination come from the caller and only shape the final
// Destination parameter.
func (g *Generator) ConsoleURL(ctx context.Context, res *profiles.Resolved, region, destination string) (string, error) {
	g.logger.Info("generating console url",
		"profile", res.Profile.Name,
		"kind", res.Profile.Kind.String(),
		"region", region,
	)

	creds, err := g.credentials(ctx, res)
	if err != nil {
		return "", err
	}

	if region == "" {
		region = res.Profile.AWSRegion
	}
	dest := destinationURL(region, destination)

	if !creds.Temporary() {
		// Long-term keys are never sent over the network; the best we can
		// do is open the console and let the ambient browser session win.
		return dest, nil
	}
	return g.federation.loginURL(ctx, creds, dest)
}

func (g *Generator) credentials(ctx context.Context, res *profiles.Resolved) (*models.AWSCredentials, error) {
	switch res.Profile.Kind {
	case models.KindStaticCredentials:
		return staticCredentials(res)
	case models.KindRoleAssumption:
		return g.assumeRole(ctx, res)
	case models.KindSSOProfile:
		return g.ssoCredentials(ctx, res)
	default:
		return nil, fmt.Errorf("%w: %s", ErrCredentialsUnavailable, res.Profile.Name)
	}
}

func staticCredentials(res *profiles.Resolved) (*models.AWSCredentials, error) {
	c := res.Credentials
	if c == nil || !c.HasKeys() {
		return nil, fmt.Errorf("%w: %s", ErrCredentialsUnavailable, res.Profile.Name)
	}
	if c.Expiration != nil && c.Expiration.Before(time.Now()) {
		return nil, fmt.Errorf("%w: credentials for %s expired at %s",
			ErrCredentialsUnavailable, res.Profile.Name, c.Expiration.Format(time.RFC3339))
	}
	return &models.AWSCredentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		Expiration:      c.Expiration,
	}, nil
}

func (g *Generator) assumeRole(ctx context.Context, res *profiles.Resolved) (*models.AWSCredentials, error) {
	cfg := res.Config
	src := res.SourceCredentials
	if cfg == nil || cfg.RoleARN == "" || src == nil || !src.HasKeys() {
		return nil, fmt.Errorf("%w: %s has no resolvable source credentials",
			ErrCredentialsUnavailable, res.Profile.Name)
	}

	client, err := g.stsClient(ctx, cfg.Region, &awsStaticCreds{
		AccessKeyID:     src.AccessKeyID,
		SecretAccessKey: src.SecretAccessKey,
		SessionToken:    src.SessionToken,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFederation, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := client.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(cfg.RoleARN),
		RoleSessionName: aws.String("aws-profile-bridge-" + res.Profile.Name),
	})
	if err != nil {
		g.logger.Error("assume role failed", "profile", res.Profile.Name, "err", apiErrorCode(err))
		return nil, fmt.Errorf("%w: assume role for %s: %v", ErrFederation, res.Profile.Name, err)
	}
	c := out.Credentials
	return &models.AWSCredentials{
		AccessKeyID:     aws.ToString(c.AccessKeyId),
		SecretAccessKey: aws.ToString(c.SecretAccessKey),
		SessionToken:    aws.ToString(c.SessionToken),
		Expiration:      c.Expiration,
	}, nil
}

func (g *Generator) ssoCredentials(ctx context.Context, res *profiles.Resolved) (*models.AWSCredentials, error) {
	p := res.Profile
	if p.SSOAccountID == "" || p.SSORoleName == "" {
		return nil, fmt.Errorf("%w: %s is missing sso_account_id or sso_role_name",
			ErrCredentialsUnavailable, p.Name)
	}

	tok, err := g.tokens.Token(ctx, p.SSOSession, p.SSOStartURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFederation, err)
	}
	if tok == nil {
		return nil, fmt.Errorf("%w: no SSO token for %s; run: aws sso login --profile %s",
			ErrCredentialsUnavailable, p.Name, p.Name)
	}

	region := p.SSORegion
	if region == "" {
		region = "us-east-1"
	}
	client, err := g.ssoClient(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFederation, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := client.GetRoleCredentials(ctx, &sso.GetRoleCredentialsInput{
		AccessToken: aws.String(tok.AccessToken),
		AccountId:   aws.String(p.SSOAccountID),
		RoleName:    aws.String(p.SSORoleName),
	})
	if err != nil {
		g.logger.Error("get role credentials failed", "profile", p.Name, "err", apiErrorCode(err))
		return nil, fmt.Errorf("%w: role credentials for %s: %v", ErrFederation, p.Name, err)
	}

	rc := out.RoleCredentials
	exp := time.UnixMilli(rc.Expiration).UTC()
	return &models.AWSCredentials{
		AccessKeyID:     aws.ToString(rc.AccessKeyId),
		SecretAccessKey: aws.ToString(rc.SecretAccessKey),
		SessionToken:    aws.ToString(rc.SessionToken),
		Expiration:      &exp,
	}, nil
}
