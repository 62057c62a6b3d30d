package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			branch, _ := r.CurrentBranch()
			if branch == "" {
				branch = "HEAD"
			}
			headHash, _ := r.ReadHeadCommit()
			if headHash == "" {
				fmt.Fprintf(out, "on %s (no commits yet)\n", branch)
			} else {
				fmt.Fprintf(out, "on %s\n", branch)
			}

			report, err := r.Status()
			if err != nil {
				return err
			}

			printGroup(out, "conflicts", report.Conflicted, color.New(color.FgRed))
			printGroup(out, "staged", report.Staged, color.New(color.FgGreen))
			printGroup(out, "modified", report.Modified, color.New(color.FgYellow))
			printGroup(out, "deleted", report.Deleted, color.New(color.FgYellow))
			printGroup(out, "untracked", report.Untracked, color.New(color.FgCyan))

			if report.Clean() && len(report.Untracked) == 0 {
				fmt.Fprintln(out, "nothing to commit, working tree clean")
			}

			return nil
		},
	}
}

func printGroup(out io.Writer, label string, paths []string, c *color.Color) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", label)
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", c.Sprint(p))
	}
}
