package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

type awsStaticCreds struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

func newSSOClient(ctx context.Context, region string) (SSOAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load SDK config: %w", err)
	}
	return sso.NewFromConfig(cfg), nil
}

func newSTSClient(ctx context.Context, region string, creds *awsStaticCreds) (STSAPI, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken,
		)),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load SDK config: %w", err)
	}
	return sts.NewFromConfig(cfg), nil
}

// apiErrorCode reduces an SDK error to its service error code for logging;
// message bodies can echo request parameters and are kept out of the log.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return "RequestFailure"
}
