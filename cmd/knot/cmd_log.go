package main

import (
	"fmt"
	"time"

	"github.com/knotvcs/knot/pkg/object"
	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			headHash, err := r.ReadHeadCommit()
			if err != nil {
				return err
			}
			if headHash == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no commits yet")
				return nil
			}

			hashes, commits, err := r.Log(headHash, limit)
			if err != nil {
				return err
			}

			branch, _ := r.CurrentBranch()
			out := cmd.OutOrStdout()
			for i, c := range commits {
				h := hashes[i]
				decoration := decorateCommit(h, headHash, branch)

				if oneline {
					short := string(h)
					if len(short) > 8 {
						short = short[:8]
					}
					line := fmt.Sprintf("%s %s", short, c.Message)
					if decoration != "" {
						line = fmt.Sprintf("%s %s %s", short, decoration, c.Message)
					}
					fmt.Fprintln(out, line)
					continue
				}

				if decoration != "" {
					fmt.Fprintf(out, "commit %s %s\n", h, decoration)
				} else {
					fmt.Fprintf(out, "commit %s\n", h)
				}
				fmt.Fprintf(out, "Author: %s\n", c.Author)
				fmt.Fprintf(out, "Date:   %s\n", time.Unix(c.Timestamp, 0).Format("2006-01-02 15:04:05"))
				fmt.Fprintln(out)
				fmt.Fprintf(out, "    %s\n", c.Message)
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "compact one-line format")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of commits to show (0 = no limit)")

	return cmd
}

func decorateCommit(h, headHash object.Hash, branch string) string {
	if h != headHash {
		return ""
	}
	if branch != "" {
		return fmt.Sprintf("(HEAD -> %s)", branch)
	}
	return "(HEAD)"
}
