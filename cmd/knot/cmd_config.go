package main

import (
	"fmt"

	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get or set a configuration value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			key := args[0]
			if len(args) == 2 {
				return r.ConfigSet(key, args[1], global)
			}

			value, ok, err := r.ConfigGet(key)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no such config key %q", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "operate on the global config ($HOME/.gitconfig)")

	return cmd
}
