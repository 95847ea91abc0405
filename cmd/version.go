// file: cmd/version.go
// version: 1.0.0
// guid: 3a4b5c6d-7e8f-9a0b-1c2d-3e4f5a6b7c8d

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Overridden at release time via -ldflags "-X ...cmd.version=".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bibsearch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bibsearch %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
