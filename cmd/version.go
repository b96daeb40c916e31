package cmd

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "solfa %s (%s)\n", resolveVersion(), runtime.Version())
	},
}

// resolveVersion prefers the linker-set version, then the module version
// recorded by go install.
func resolveVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := rdebug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}
