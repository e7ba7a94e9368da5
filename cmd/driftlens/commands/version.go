package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// SetVersionInfo records build metadata injected by the linker
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			runVersion(cmd)
		},
	}
}

func runVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "driftlens %s\n", buildVersion)
	fmt.Fprintf(out, "  commit:  %s\n", buildCommit)
	fmt.Fprintf(out, "  built:   %s\n", buildDate)
	fmt.Fprintf(out, "  go:      %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
