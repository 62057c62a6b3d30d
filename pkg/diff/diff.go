// Package diff renders unified and side-by-side views of two blob
// revisions. It has no bearing on hashes, trees, or merge outcomes — a
// presentation layer over content the core object store already manages.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// OpKind classifies one line of an edit script.
type OpKind int

const (
	Keep OpKind = iota
	Insert
	Delete
)

// LineOp is one line-level operation produced by the Myers shortest-edit-
// script algorithm.
type LineOp struct {
	Kind OpKind
	Text string
}

// LineDiff runs the Myers algorithm over before/after split into lines,
// diffing at line granularity via diffmatchpatch's line-hashing trick
// (DiffLinesToChars collapses each line to a single rune so the underlying
// character-level Myers search runs over line counts, not byte counts).
func LineDiff(before, after []byte) []LineOp {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(string(before), string(after))
	charDiffs := dmp.DiffMain(a, b, false)
	lineDiffs := dmp.DiffCharsToLines(charDiffs, lineArray)

	var ops []LineOp
	for _, d := range lineDiffs {
		for _, line := range splitKeepEmpty(d.Text) {
			var kind OpKind
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				kind = Insert
			case diffmatchpatch.DiffDelete:
				kind = Delete
			default:
				kind = Keep
			}
			ops = append(ops, LineOp{Kind: kind, Text: line})
		}
	}
	return ops
}

// splitKeepEmpty splits s on newlines the way unified diffs expect: a
// trailing newline does not produce a spurious empty final line.
func splitKeepEmpty(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
