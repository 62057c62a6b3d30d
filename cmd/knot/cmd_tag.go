package main

import (
	"fmt"

	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag [name]",
		Short: "List or create tags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if len(args) == 1 {
				head, err := r.ReadHeadCommit()
				if err != nil {
					return err
				}
				return r.CreateTag(args[0], head)
			}

			tags, err := r.ListTags()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range tags {
				fmt.Fprintln(out, t.Name)
			}
			return nil
		},
	}
}
