// Package bridge wires the bridge's components together and runs the
// native messaging host over the process's standard streams.
package bridge

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/awsfiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/console"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/filecache"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/nativemsg"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/profiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/settings"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/ssotoken"
)

// Paths locates every file the bridge reads. The AWS CLI environment
// overrides are honored so the bridge sees the same world as the CLI.
type Paths struct {
	CredentialsFile string
	ConfigFile      string
	SSOCacheDir     string
	SuppressFile    string
}

func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}
	awsDir := filepath.Join(home, ".aws")

	p := Paths{
		CredentialsFile: filepath.Join(awsDir, "credentials"),
		ConfigFile:      filepath.Join(awsDir, "config"),
		SSOCacheDir:     filepath.Join(awsDir, "sso", "cache"),
		SuppressFile:    filepath.Join(awsDir, ".nosso"),
	}
	if v := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); v != "" {
		p.CredentialsFile = v
	}
	if v := os.Getenv("AWS_CONFIG_FILE"); v != "" {
		p.ConfigFile = v
	}
	return p, nil
}

// Bridge owns the component graph for one process lifetime. The file
// cache's lifecycle is tied to it: reset only on restart.
type Bridge struct {
	Aggregator *profiles.Aggregator
	Generator  *console.Generator
	handler    *Handler
	logger     *slog.Logger
}

func New(fs afero.Fs, paths Paths, cfg *settings.Settings, logger *slog.Logger) *Bridge {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	cache := filecache.New(fs)
	files := awsfiles.New(cache, paths.CredentialsFile, paths.ConfigFile)
	tokens := ssotoken.NewStore(fs, paths.SSOCacheDir, ssotoken.OIDCRefresher(timeout), logger)
	meta := profiles.NewMetadata(cfg.MetadataRules)
	aggregator := profiles.NewAggregator(fs, files, tokens, meta, paths.SuppressFile, logger)
	generator := console.NewGenerator(tokens, console.Options{
		FederationEndpoint: cfg.FederationEndpoint,
		Issuer:             cfg.Issuer,
		SessionDuration:    time.Duration(cfg.SessionDurationSeconds) * time.Second,
		Timeout:            timeout,
	}, logger)

	return &Bridge{
		Aggregator: aggregator,
		Generator:  generator,
		handler:    NewHandler(aggregator, generator, logger),
		logger:     logger,
	}
}

// Serve runs the message loop over the given streams until end of stream
// or a protocol violation.
func (b *Bridge) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	host := nativemsg.NewHost(in, out, b.handler, b.logger)
	return host.Run(ctx)
}
