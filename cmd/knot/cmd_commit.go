package main

import (
	"fmt"
	"os"

	"github.com/knotvcs/knot/pkg/object"
	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string
	var author string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record staged changes as a new commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if author == "" {
				if name, ok, cfgErr := r.ConfigGet("author.name"); cfgErr == nil && ok {
					author = name
				}
			}
			if author == "" {
				author = os.Getenv("USER")
			}
			if author == "" {
				author = "unknown"
			}

			var h object.Hash
			inProgress, err := r.MergeInProgress()
			if err != nil {
				return err
			}
			if inProgress {
				target, terr := r.MergeTarget()
				if terr != nil {
					return terr
				}
				h, err = r.Commit(author, message, target)
			} else {
				h, err = r.Commit(author, message)
			}
			if err != nil {
				return err
			}

			branch, _ := r.CurrentBranch()
			if branch == "" {
				branch = "HEAD"
			}
			short := string(h)
			if len(short) > 8 {
				short = short[:8]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", branch, short, message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&author, "author", "", "override author (default: author.name config, then $USER)")

	return cmd
}
