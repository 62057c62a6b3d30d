package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/knotvcs/knot/pkg/diff"
	"github.com/knotvcs/knot/pkg/object"
	"github.com/knotvcs/knot/pkg/repo"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var sideBySide bool

	cmd := &cobra.Command{
		Use:   "diff <path>",
		Short: "Show changes between HEAD and the working tree for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := repo.NormalizePath(args[0])
			if err != nil {
				return err
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			headHash, err := r.ReadHeadCommit()
			if err != nil {
				return err
			}
			tree, err := r.FlattenTree(mustTreeHash(r, headHash))
			if err != nil {
				return err
			}

			var before []byte
			if h, ok := tree[path]; ok {
				b, err := r.Store.ReadBlob(h)
				if err != nil {
					return err
				}
				before = b.Data
			}

			after, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(path)))
			if err != nil && !os.IsNotExist(err) {
				return err
			}

			if bytes.Equal(before, after) {
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "diff --knot a/%s b/%s\n", path, path)
			fmt.Fprintf(out, "--- a/%s\n", path)
			fmt.Fprintf(out, "+++ b/%s\n", path)

			ops := diff.LineDiff(before, after)
			hunks := diff.Hunks(ops)

			if sideBySide {
				fmt.Fprint(out, diff.FormatSideBySide(hunks, 40))
				return nil
			}

			printColoredUnified(out, hunks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sideBySide, "side-by-side", false, "render an aligned two-column diff")

	return cmd
}

func mustTreeHash(r *repo.Repo, commitHash object.Hash) object.Hash {
	if commitHash == "" {
		return ""
	}
	c, err := r.Store.ReadCommit(commitHash)
	if err != nil {
		return ""
	}
	return c.Tree
}

func printColoredUnified(out io.Writer, hunks []diff.Hunk) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	for _, h := range hunks {
		fmt.Fprintf(out, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, op := range h.Ops {
			switch op.Kind {
			case diff.Keep:
				fmt.Fprintf(out, " %s\n", op.Text)
			case diff.Delete:
				fmt.Fprintln(out, red.Sprintf("-%s", op.Text))
			case diff.Insert:
				fmt.Fprintln(out, green.Sprintf("+%s", op.Text))
			}
		}
	}
}
