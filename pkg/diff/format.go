package diff

import (
	"fmt"
	"strings"
)

// Hunk is one contiguous run of an edit script, with enough surrounding
// context line numbers to render a "@@ -a,b +c,d @@" header.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Ops                []LineOp
}

// Hunks wraps a flat edit script as a single whole-file hunk when it
// contains any change, or no hunks when the two revisions are identical.
// There is no context-line trimming or splitting into multiple hunks here:
// conflict and diff granularity in this engine is whole-file (spec
// Non-goals), so the renderer doesn't pretend otherwise.
func Hunks(ops []LineOp) []Hunk {
	dirty := false
	for _, op := range ops {
		if op.Kind != Keep {
			dirty = true
			break
		}
	}
	if !dirty {
		return nil
	}

	h := Hunk{OldStart: 1, NewStart: 1, Ops: ops}
	for _, op := range ops {
		switch op.Kind {
		case Keep:
			h.OldCount++
			h.NewCount++
		case Delete:
			h.OldCount++
		case Insert:
			h.NewCount++
		}
	}
	return []Hunk{h}
}

// FormatUnified renders hunks as "@@ -a,b +c,d @@" headers followed by
// "-"/"+"/" "-prefixed lines.
func FormatUnified(hunks []Hunk) string {
	var b strings.Builder
	for _, h := range hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, op := range h.Ops {
			switch op.Kind {
			case Keep:
				fmt.Fprintf(&b, " %s\n", op.Text)
			case Delete:
				fmt.Fprintf(&b, "-%s\n", op.Text)
			case Insert:
				fmt.Fprintf(&b, "+%s\n", op.Text)
			}
		}
	}
	return b.String()
}

// FormatSideBySide renders two aligned columns: deletions and keeps on the
// left, insertions and keeps on the right, each op on its own row.
func FormatSideBySide(hunks []Hunk, width int) string {
	var b strings.Builder
	for _, h := range hunks {
		for _, op := range h.Ops {
			var left, right string
			switch op.Kind {
			case Keep:
				left, right = op.Text, op.Text
			case Delete:
				left = op.Text
			case Insert:
				right = op.Text
			}
			fmt.Fprintf(&b, "%-*s | %s\n", width, truncate(left, width), right)
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width]
}
