package main

import (
	"fmt"

	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <target>",
		Short: "Switch branches, or restore a file with '-- <file>'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			// "checkout -- <file>" restores a single tracked path from HEAD
			// without moving HEAD.
			if cmd.ArgsLenAtDash() == 0 {
				return r.CheckoutFile(args[0])
			}

			target := args[0]
			if err := r.Checkout(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "switched to %q\n", target)
			return nil
		},
	}
}
