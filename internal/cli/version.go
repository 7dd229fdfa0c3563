package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-reader/internal/build"
)

func newVersionCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display version, commit, build date, and Go version information for changelog-reader",
		Example: `  # Show version info
  changelog-reader version

  # Plain output (for scripts)
  changelog-reader version --plain`,
		GroupID: GroupManage,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if opts.plainOutput(out) {
				printPlainVersion(out)
				return
			}
			printPrettyVersion(out)
		},
	}

	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "changelog-reader %s\n", build.Version)
	for _, item := range build.Details()[1:] {
		fmt.Fprintf(w, "%s: %s\n", strings.ToLower(item.Label), item.Value)
	}
}

// printPrettyVersion prints the build details as an aligned, colored table
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "\n  %s\n\n", cyan("changelog-reader"))
	for _, item := range build.Details() {
		fmt.Fprintf(w, "  %s    %s\n", yellow(fmt.Sprintf("%10s", item.Label)), white(item.Value))
	}
	fmt.Fprintf(w, "\n  %s\n\n", dim(build.SourceURL))
}
