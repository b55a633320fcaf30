package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the brickmath version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "brickmath", resolveVersion(version, debug.ReadBuildInfo))
	},
}

// resolveVersion prefers the linker-set version, then the module version
// recorded by `go install`.
func resolveVersion(linked string, info func() (*debug.BuildInfo, bool)) string {
	if linked != "" {
		return linked
	}
	if bi, ok := info(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
