package main

import (
	"fmt"
	"os"

	"github.com/sam-fakhreddine/aws-containers-sub004/cmd/root"
)

func main() {
	// Errors go to stderr: stdout belongs to the messaging protocol.
	if err := root.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
