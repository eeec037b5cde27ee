package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mathwheel", displayVersion(version))
	},
}

// displayVersion canonicalizes release tags (v1.2 becomes v1.2.0) and
// leaves development builds alone.
func displayVersion(v string) string {
	if !semver.IsValid(v) {
		return v
	}
	c := semver.Canonical(v)
	if semver.Prerelease(v) != "" {
		return c + " (pre-release)"
	}
	return c
}
