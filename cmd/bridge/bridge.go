package bridge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/bridge"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/logging"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/settings"
)

// RunServe is both the root command's default action (browsers launch the
// host binary without a subcommand) and the serve subcommand's.
func RunServe(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Config{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	paths, err := bridge.DefaultPaths()
	if err != nil {
		return err
	}

	b := bridge.New(afero.NewOsFs(), paths, cfg, logger)
	return b.Serve(cmd.Context(), os.Stdin, os.Stdout)
}

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the native messaging host on stdin/stdout",
		Args:  cobra.ArbitraryArgs,
		RunE:  RunServe,
	}
}

// NewProfilesCommand prints the aggregated profile list as JSON, for
// checking what the extension would see without a browser in the loop.
func NewProfilesCommand() *cobra.Command {
	var enrich bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Print the aggregated profile list as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings.Load()
			if err != nil {
				return err
			}
			paths, err := bridge.DefaultPaths()
			if err != nil {
				return err
			}

			b := bridge.New(afero.NewOsFs(), paths, cfg, logging.Discard())
			list, warnings := b.Aggregator.List(cmd.Context(), enrich)

			for _, w := range warnings {
				fmt.Fprintln(os.Stderr, "warning:", w)
			}

			out, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&enrich, "enrich", false, "validate SSO token state (slower)")
	return cmd
}

// NewDiagnoseCommand reports the bridge's view of its environment.
func NewDiagnoseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Report bridge environment status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings.Load()
			if err != nil {
				return err
			}
			paths, err := bridge.DefaultPaths()
			if err != nil {
				return err
			}

			report := func(label, path string) {
				status := "missing"
				if _, err := os.Stat(path); err == nil {
					status = "present"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %-8s %s\n", label, status, path)
			}

			report("credentials file", paths.CredentialsFile)
			report("config file", paths.ConfigFile)
			report("sso cache dir", paths.SSOCacheDir)
			report("suppression flag", paths.SuppressFile)
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %-8s %s\n", "log file", "", cfg.LogFile)
			return nil
		},
	}
}
