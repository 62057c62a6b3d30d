package main

import (
	"fmt"
	"os"

	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var abort bool

	cmd := &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if abort {
				return r.AbortMerge()
			}

			if len(args) != 1 {
				return fmt.Errorf("merge requires a branch name (or --abort)")
			}
			branchName := args[0]

			current, err := r.CurrentBranch()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "merging %s into %s...\n", branchName, current)

			author := os.Getenv("USER")
			if author == "" {
				author = "unknown"
			}

			result, err := r.Merge(branchName, author)
			if err != nil {
				return err
			}

			switch {
			case result.FastForward:
				fmt.Fprintln(out, "fast-forward")
			case len(result.Conflicts) > 0:
				fmt.Fprintf(out, "automatic merge failed; fix conflicts and then commit the result\n")
				for _, c := range result.Conflicts {
					fmt.Fprintf(out, "  CONFLICT (%s): %s\n", c.Reason, c.Path)
				}
			default:
				short := string(result.CommitHash)
				if len(short) > 8 {
					short = short[:8]
				}
				fmt.Fprintf(out, "[%s %s] Merge branch '%s'\n", current, short, branchName)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&abort, "abort", false, "abort an in-progress merge")

	return cmd
}
