package root

import (
	cmdBridge "github.com/sam-fakhreddine/aws-containers-sub004/cmd/bridge"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "aws-profile-bridge",
	Short: "Native messaging host bridging AWS profiles to the browser extension",
	Long: `aws-profile-bridge reads the AWS shared config and credentials files,
tracks SSO token state, and serves profile listings and signed console
federation URLs to the browser extension over native messaging.`,
	// Browsers launch the registered host binary with the extension origin
	// as a positional argument; accept and ignore it.
	Args: cobra.ArbitraryArgs,
	RunE: cmdBridge.RunServe,
	// Usage spam on stdout would corrupt the protocol stream.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.AddCommand(cmdBridge.NewServeCommand())
	RootCmd.AddCommand(cmdBridge.NewProfilesCommand())
	RootCmd.AddCommand(cmdBridge.NewDiagnoseCommand())
}
