package ssotoken

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"

	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

// OIDCRefresher returns a RefreshFunc backed by the AWS SSO OIDC service.
// The call is bounded by the given timeout so a stalled endpoint cannot
// hang the message loop.
func OIDCRefresher(timeout time.Duration) RefreshFunc {
	return func(ctx context.Context, token *models.SSOToken) (*models.SSOToken, error) {
		region := token.Region
		if region == "" {
			region = "us-east-1"
		}
		client := ssooidc.New(ssooidc.Options{Region: region})

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		out, err := client.CreateToken(ctx, &ssooidc.CreateTokenInput{
			ClientId:     aws.String(token.ClientID),
			ClientSecret: aws.String(token.ClientSecret),
			GrantType:    aws.String("refresh_token"),
			RefreshToken: aws.String(token.RefreshToken),
		})
		if err != nil {
			return nil, fmt.Errorf("create token: %w", err)
		}
		if out.AccessToken == nil {
			return nil, fmt.Errorf("create token: empty access token in response")
		}

		refreshed := *token
		refreshed.AccessToken = *out.AccessToken
		refreshed.ExpiresAt = time.Now().UTC().Add(time.Duration(out.ExpiresIn) * time.Second)
		if out.RefreshToken != nil {
			refreshed.RefreshToken = *out.RefreshToken
		}
		return &refreshed, nil
	}
}
