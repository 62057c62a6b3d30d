package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knotvcs/knot/pkg/object"
)

// ConflictReason classifies why a path could not be auto-merged.
type ConflictReason string

const (
	AddedModified ConflictReason = "added_modified"
	BothModified  ConflictReason = "both_modified"
	DeletedModified ConflictReason = "deleted_modified"
)

// Conflict is one path's three-way merge outcome that needs a human.
type Conflict struct {
	Path   string
	Reason ConflictReason
	Base   object.Hash
	Ours   object.Hash
	Theirs object.Hash
}

// MergeResult reports what Merge did: a fast-forward, an immediate
// auto-merge commit, or a conflicted merge awaiting resolution.
type MergeResult struct {
	FastForward bool
	CommitHash  object.Hash // set on fast-forward or a clean auto-merge
	Conflicts   []Conflict  // non-empty only when the merge needs resolving
}

// Ancestors does a BFS over parent edges starting at start, returning the
// set of reachable commit hashes (inclusive of start) and the order they
// were first discovered in, to keep common-ancestor search deterministic.
func (r *Repo) Ancestors(start object.Hash) ([]object.Hash, map[object.Hash]bool, error) {
	if start == "" {
		return nil, map[object.Hash]bool{}, nil
	}
	seen := map[object.Hash]bool{}
	var order []object.Hash
	queue := []object.Hash{start}
	seen[start] = true

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		order = append(order, h)

		c, err := r.Store.ReadCommit(h)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range c.Parents {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return order, seen, nil
}

// CommonAncestor returns the first commit in ancestry(a), in BFS insertion
// order, that also belongs to ancestry(b). This is the naive algorithm
// specified in spec §4.7, not a minimal lowest-common-ancestor search.
func (r *Repo) CommonAncestor(a, b object.Hash) (object.Hash, error) {
	orderA, _, err := r.Ancestors(a)
	if err != nil {
		return "", err
	}
	_, setB, err := r.Ancestors(b)
	if err != nil {
		return "", err
	}
	for _, h := range orderA {
		if setB[h] {
			return h, nil
		}
	}
	return "", nil
}

// IsAncestor reports whether candidate is reachable from start by following
// parent edges (inclusive: a commit is its own ancestor).
func (r *Repo) IsAncestor(candidate, start object.Hash) (bool, error) {
	_, set, err := r.Ancestors(start)
	if err != nil {
		return false, err
	}
	return set[candidate], nil
}

// MergeInProgress reports whether MERGE_HEAD is present.
func (r *Repo) MergeInProgress() (bool, error) {
	_, err := os.Stat(filepath.Join(r.MetaDir, "MERGE_HEAD"))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, wrapError(PathNotFound, err, "stat MERGE_HEAD")
	}
	return true, nil
}

// MergeTarget returns the in-progress merge's target commit hash, or "" if
// no merge is in progress.
func (r *Repo) MergeTarget() (object.Hash, error) {
	return r.readMergeHead()
}

func (r *Repo) readMergeHead() (object.Hash, error) {
	data, err := os.ReadFile(filepath.Join(r.MetaDir, "MERGE_HEAD"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", wrapError(PathNotFound, err, "read MERGE_HEAD")
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}

func (r *Repo) writeMergeState(target object.Hash, message string) error {
	if err := atomicWriteFile(filepath.Join(r.MetaDir, "MERGE_HEAD"), []byte(string(target)+"\n")); err != nil {
		return wrapError(PathNotFound, err, "write MERGE_HEAD")
	}
	if err := atomicWriteFile(filepath.Join(r.MetaDir, "MERGE_MSG"), []byte(message+"\n")); err != nil {
		return wrapError(PathNotFound, err, "write MERGE_MSG")
	}
	return nil
}

// clearMergeState removes MERGE_HEAD and MERGE_MSG, tolerating their
// absence. It never touches working-tree content.
func (r *Repo) clearMergeState() error {
	for _, name := range []string{"MERGE_HEAD", "MERGE_MSG"} {
		if err := os.Remove(filepath.Join(r.MetaDir, name)); err != nil && !os.IsNotExist(err) {
			return wrapError(PathNotFound, err, "remove %s", name)
		}
	}
	return nil
}

// Merge merges branchName into the current branch. It performs a
// fast-forward when possible, otherwise a three-way merge: a conflict-free
// result is committed immediately, a conflicted one leaves markers in the
// working tree and defers the commit.
func (r *Repo) Merge(branchName, author string) (*MergeResult, error) {
	if err := r.validateMerge(branchName); err != nil {
		return nil, err
	}

	ours, err := r.ReadHeadCommit()
	if err != nil {
		return nil, err
	}
	theirs, err := r.ResolveRef(branchName)
	if err != nil {
		return nil, err
	}

	ff, err := r.IsAncestor(ours, theirs)
	if err != nil {
		return nil, err
	}
	if ff {
		head, err := r.ReadHEAD()
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(head, "refs/") {
			if err := r.UpdateRef(head, theirs); err != nil {
				return nil, err
			}
		} else {
			if err := r.SetHEADDetached(theirs); err != nil {
				return nil, err
			}
		}
		if err := r.restoreWorkingTree(theirs); err != nil {
			return nil, err
		}
		_ = r.runHook("post-merge", "0")
		return &MergeResult{FastForward: true, CommitHash: theirs}, nil
	}

	base, err := r.CommonAncestor(ours, theirs)
	if err != nil {
		return nil, err
	}

	baseTree, err := r.treeOf(base)
	if err != nil {
		return nil, err
	}
	oursTree, err := r.treeOf(ours)
	if err != nil {
		return nil, err
	}
	theirsTree, err := r.treeOf(theirs)
	if err != nil {
		return nil, err
	}

	resolved := map[string]object.Hash{}
	var conflicts []Conflict

	paths := map[string]bool{}
	for p := range baseTree {
		paths[p] = true
	}
	for p := range oursTree {
		paths[p] = true
	}
	for p := range theirsTree {
		paths[p] = true
	}

	for p := range paths {
		a, hasA := baseTree[p]
		o, hasO := oursTree[p]
		t, hasT := theirsTree[p]

		switch {
		case !hasA && !hasO && hasT:
			resolved[p] = t
		case !hasA && hasO && !hasT:
			resolved[p] = o
		case !hasA && hasO && hasT && o != t:
			conflicts = append(conflicts, Conflict{Path: p, Reason: AddedModified, Ours: o, Theirs: t})
		case hasA && hasO && hasT && o == a && t == a:
			resolved[p] = a
		case hasA && hasO && hasT && o == a && t != a:
			resolved[p] = t
		case hasA && hasO && hasT && o != a && t == a:
			resolved[p] = o
		case hasA && hasO && hasT && o != a && t != a && o != t:
			conflicts = append(conflicts, Conflict{Path: p, Reason: BothModified, Base: a, Ours: o, Theirs: t})
		case hasA && !hasO && hasT && t == a:
			// deletion accepted: stays absent
		case hasA && hasO && !hasT && o == a:
			// deletion accepted: stays absent
		case hasA && !hasO && hasT && t != a:
			conflicts = append(conflicts, Conflict{Path: p, Reason: DeletedModified, Base: a, Theirs: t})
		case hasA && hasO && !hasT && o != a:
			conflicts = append(conflicts, Conflict{Path: p, Reason: DeletedModified, Base: a, Ours: o})
		}
	}

	if len(conflicts) > 0 {
		if err := r.writeMergeState(theirs, fmt.Sprintf("Merge branch '%s'", branchName)); err != nil {
			return nil, err
		}
		for _, c := range conflicts {
			if err := r.writeConflictFile(c); err != nil {
				return nil, err
			}
		}
		return &MergeResult{Conflicts: conflicts}, nil
	}

	rootTree, err := r.BuildTree(resolved)
	if err != nil {
		return nil, err
	}
	commit := &object.Commit{
		Tree:      rootTree,
		Parents:   []object.Hash{ours, theirs},
		Author:    author,
		Timestamp: time.Now().Unix(),
		Message:   fmt.Sprintf("Merge branch '%s'", branchName),
	}
	commitHash, err := r.Store.WriteCommit(commit)
	if err != nil {
		return nil, err
	}
	head, err := r.ReadHEAD()
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(head, "refs/") {
		if err := r.UpdateRef(head, commitHash); err != nil {
			return nil, err
		}
	} else {
		if err := r.SetHEADDetached(commitHash); err != nil {
			return nil, err
		}
	}
	if err := r.restoreWorkingTree(commitHash); err != nil {
		return nil, err
	}
	_ = r.runHook("post-merge", "0")

	return &MergeResult{CommitHash: commitHash}, nil
}

func (r *Repo) treeOf(h object.Hash) (map[string]object.Hash, error) {
	if h == "" {
		return map[string]object.Hash{}, nil
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		return nil, err
	}
	return r.FlattenTree(c.Tree)
}

// writeConflictFile overwrites the working-tree file at c.Path with the
// standard marker block framing ours and theirs content.
func (r *Repo) writeConflictFile(c Conflict) error {
	var ours, theirs []byte
	if c.Ours != "" {
		b, err := r.Store.ReadBlob(c.Ours)
		if err != nil {
			return err
		}
		ours = b.Data
	}
	if c.Theirs != "" {
		b, err := r.Store.ReadBlob(c.Theirs)
		if err != nil {
			return err
		}
		theirs = b.Data
	}

	var buf strings.Builder
	buf.WriteString(markerOurs + "\n")
	buf.Write(ours)
	if len(ours) > 0 && ours[len(ours)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(markerSep + "\n")
	buf.Write(theirs)
	if len(theirs) > 0 && theirs[len(theirs)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(markerTheirs + " " + c.Path + "\n")

	absPath := filepath.Join(r.RootDir, filepath.FromSlash(c.Path))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return wrapError(PathNotFound, err, "mkdir for conflict %q", c.Path)
	}
	if err := os.WriteFile(absPath, []byte(buf.String()), 0o644); err != nil {
		return wrapError(PathNotFound, err, "write conflict file %q", c.Path)
	}
	return nil
}

// ResolveConflict rewrites path from the chosen side, "ours" or "theirs",
// removing the conflict markers so the path no longer blocks merge
// completion. When the chosen side does not have the path, the working file
// is deleted instead. Any other choice is rejected; there is no choice that
// leaves the markers in place.
func (r *Repo) ResolveConflict(path string, choice string) error {
	inProgress, err := r.MergeInProgress()
	if err != nil {
		return err
	}
	if !inProgress {
		return newError(NoMergeInProgress, "no merge in progress")
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	headHash, err := r.ReadHeadCommit()
	if err != nil {
		return err
	}
	theirsHash, err := r.readMergeHead()
	if err != nil {
		return err
	}
	oursTree, err := r.treeOf(headHash)
	if err != nil {
		return err
	}
	theirsTree, err := r.treeOf(theirsHash)
	if err != nil {
		return err
	}

	absPath := filepath.Join(r.RootDir, filepath.FromSlash(path))
	switch choice {
	case "ours":
		h, ok := oursTree[path]
		if !ok {
			return os.Remove(absPath)
		}
		b, err := r.Store.ReadBlob(h)
		if err != nil {
			return err
		}
		if err := os.WriteFile(absPath, b.Data, 0o644); err != nil {
			return wrapError(PathNotFound, err, "resolve %q", path)
		}
		idx.Set(path, h)
	case "theirs":
		h, ok := theirsTree[path]
		if !ok {
			_ = os.Remove(absPath)
			idx.Set(path, "")
			return r.WriteIndex(idx)
		}
		b, err := r.Store.ReadBlob(h)
		if err != nil {
			return err
		}
		if err := os.WriteFile(absPath, b.Data, 0o644); err != nil {
			return wrapError(PathNotFound, err, "resolve %q", path)
		}
		idx.Set(path, h)
	default:
		return newError(PathNotFound, "unknown resolution choice %q", choice)
	}

	return r.WriteIndex(idx)
}

// AbortMerge removes merge state without touching working-tree content the
// user may already have edited.
func (r *Repo) AbortMerge() error {
	inProgress, err := r.MergeInProgress()
	if err != nil {
		return err
	}
	if !inProgress {
		return newError(NoMergeInProgress, "no merge in progress")
	}
	return r.clearMergeState()
}

// restoreWorkingTree reconciles the working directory with commitHash's
// tree the same way Checkout does: paths gone from the target tree are
// removed (unless important), paths present are written, then the index
// is cleared. Used after a fast-forward or a clean auto-merge.
func (r *Repo) restoreWorkingTree(commitHash object.Hash) error {
	tree, err := r.treeOf(commitHash)
	if err != nil {
		return err
	}

	workPaths, err := r.WorkingTreePaths()
	if err != nil {
		return err
	}
	matcher := NewIgnoreMatcher(r.RootDir)
	for p := range workPaths {
		if _, keep := tree[p]; keep {
			continue
		}
		if matcher.IsImportant(p) {
			continue
		}
		absPath := filepath.Join(r.RootDir, filepath.FromSlash(p))
		if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
			return wrapError(PathNotFound, err, "remove %q", p)
		}
	}

	for p, h := range tree {
		b, err := r.Store.ReadBlob(h)
		if err != nil {
			return err
		}
		absPath := filepath.Join(r.RootDir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return wrapError(PathNotFound, err, "mkdir %q", p)
		}
		if err := os.WriteFile(absPath, b.Data, 0o644); err != nil {
			return wrapError(PathNotFound, err, "write %q", p)
		}
	}
	return r.ClearIndex()
}
