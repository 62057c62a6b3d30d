package object

import "fmt"

// CorruptObjectError reports an object whose on-disk envelope is malformed:
// an unparsable header, or a declared content length that disagrees with
// the bytes that follow it.
type CorruptObjectError struct {
	Hash   Hash
	Reason string
}

func (e *CorruptObjectError) Error() string {
	return fmt.Sprintf("corrupt object %s: %s", e.Hash, e.Reason)
}

// MissingObjectError reports a hash with no corresponding object on disk.
type MissingObjectError struct {
	Hash Hash
}

func (e *MissingObjectError) Error() string {
	return fmt.Sprintf("missing object %s", e.Hash)
}

// AmbiguousShortHashError reports a short-hash prefix matched by more than
// one stored object.
type AmbiguousShortHashError struct {
	Prefix  string
	Matches []Hash
}

func (e *AmbiguousShortHashError) Error() string {
	return fmt.Sprintf("short hash %q is ambiguous (%d matches)", e.Prefix, len(e.Matches))
}
