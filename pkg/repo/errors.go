package repo

import "fmt"

// ErrorKind classifies a repository-level failure without tying callers to
// a specific Go type per failure mode (see spec §7's error taxonomy).
type ErrorKind string

const (
	NotARepo            ErrorKind = "not_a_repo"
	AlreadyExists       ErrorKind = "already_exists"
	InvalidName         ErrorKind = "invalid_name"
	MissingRefKind      ErrorKind = "missing_ref"
	NotACommit          ErrorKind = "not_a_commit"
	WouldOverwrite      ErrorKind = "would_overwrite_changes"
	NothingToCommit     ErrorKind = "nothing_to_commit"
	MergeInProgress     ErrorKind = "merge_in_progress"
	NoMergeInProgress   ErrorKind = "no_merge_in_progress"
	ConflictsRemain     ErrorKind = "conflicts_remain"
	PathNotFound        ErrorKind = "path_not_found"
	HookRejected        ErrorKind = "hook_rejected"
	AlreadyAtTarget     ErrorKind = "already_at_target"
)

// Error is the typed result returned by repo operations on failure. Object
// store failures (MissingObject, AmbiguousShortHash, CorruptObject) mostly
// surface as-is from pkg/object; ResolveRef wraps a failed commit lookup in
// a MissingRefKind or NotACommit Error whose Unwrap returns the original.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err is a repo *Error of the given kind.
func Is(err error, kind ErrorKind) bool {
	re, ok := err.(*Error)
	return ok && re.Kind == kind
}
