package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/version"
)

// NewVersionCmd creates the 'version' command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the current version, commit hash, and build date.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}
}

func runVersion(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, version.Name)
	fmt.Fprintf(out, "Version:  %s\n", version.GetVersion())
	fmt.Fprintf(out, "Commit:   %s\n", version.GetCommit())
	fmt.Fprintf(out, "Built:    %s\n", version.GetDate())
	return nil
}
