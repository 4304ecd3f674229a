package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

const (
	defaultFederationEndpoint = "https://signin.aws.amazon.com/federation"
	defaultConsoleURL         = "https://console.aws.amazon.com/"
	defaultIssuer             = "aws-profile-bridge"
	defaultSessionDuration    = 12 * time.Hour
	defaultTimeout            = 10 * time.Second

	// Federation responses are tiny; anything bigger is not AWS.
	maxFederationResponse = 1 << 20
)

// federationClient performs the two-step console sign-in exchange:
// temporary credentials for a signin token, then a login URL carrying it.
type federationClient struct {
	endpoint        string
	issuer          string
	sessionDuration time.Duration
	http            *http.Client
}

func newFederationClient(opts Options) *federationClient {
	return &federationClient{
		endpoint:        opts.FederationEndpoint,
		issuer:          opts.Issuer,
		sessionDuration: opts.SessionDuration,
		http:            &http.Client{Timeout: opts.Timeout},
	}
}

func (f *federationClient) loginURL(ctx context.Context, creds *models.AWSCredentials, destination string) (string, error) {
	token, err := f.signinToken(ctx, creds)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("Action", "login")
	params.Set("Issuer", f.issuer)
	params.Set("Destination", destination)
	params.Set("SigninToken", token)
	return f.endpoint + "?" + params.Encode(), nil
}

func (f *federationClient) signinToken(ctx context.Context, creds *models.AWSCredentials) (string, error) {
	session, err := json.Marshal(map[string]string{
		"sessionId":    creds.AccessKeyID,
		"sessionKey":   creds.SecretAccessKey,
		"sessionToken": creds.SessionToken,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode session: %v", ErrFederation, err)
	}

	params := url.Values{}
	params.Set("Action", "getSigninToken")
	params.Set("SessionDuration", fmt.Sprintf("%d", int(f.sessionDuration.Seconds())))
	params.Set("Session", string(session))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFederation, err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFederation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: federation endpoint returned %d", ErrFederation, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFederationResponse))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrFederation, err)
	}

	var result struct {
		SigninToken string `json:"SigninToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrFederation, err)
	}
	if result.SigninToken == "" {
		return "", fmt.Errorf("%w: empty signin token in response", ErrFederation)
	}
	return result.SigninToken, nil
}

// destinationURL shapes the console landing page. An empty destination
// lands on the console home; a service slug (e.g. "s3") deep links into
// that service. A region pins both the console host and the region query.
func destinationURL(region, destination string) string {
	if destination != "" {
		if u, err := url.Parse(destination); err == nil && u.Scheme == "https" {
			return destination
		}
	}

	if region == "" {
		if destination == "" {
			return defaultConsoleURL
		}
		return fmt.Sprintf("https://console.aws.amazon.com/%s/home", destination)
	}

	if destination == "" {
		return fmt.Sprintf("https://%s.console.aws.amazon.com/console/home?region=%s", region, region)
	}
	return fmt.Sprintf("https://%s.console.aws.amazon.com/%s/home?region=%s", region, destination, region)
}
