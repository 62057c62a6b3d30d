package repo

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/knotvcs/knot/pkg/object"
)

// FileState is the per-path classification produced by Status.
type FileState int

const (
	Unmodified FileState = iota
	Modified
	Staged
	Untracked
	Deleted
	Conflicted
)

func (s FileState) String() string {
	switch s {
	case Unmodified:
		return "unmodified"
	case Modified:
		return "modified"
	case Staged:
		return "staged"
	case Untracked:
		return "untracked"
	case Deleted:
		return "deleted"
	case Conflicted:
		return "conflicted"
	default:
		return "unknown"
	}
}

// StatusEntry is one path's classification.
type StatusEntry struct {
	Path  string
	State FileState
}

// StatusReport is the classifier's full output: entries plus the aggregate
// sets consumers (status rendering, validators) commonly need.
type StatusReport struct {
	Entries  []StatusEntry
	Staged   []string // index differs from HEAD
	Modified []string // working tree differs from what it's compared against
	Untracked []string
	Deleted  []string
	Conflicted []string
}

// Clean reports whether the working tree and index have no pending
// changes: no staged changes, no modified tracked files, no deleted tracked
// files (staged or not), and no conflicts. Untracked files do not count as
// dirty.
func (sr *StatusReport) Clean() bool {
	return len(sr.Staged) == 0 && len(sr.Modified) == 0 && len(sr.Deleted) == 0 && len(sr.Conflicted) == 0
}

// conflictMarkers are the three literal tokens that, present together and
// in order, mark a working-tree file as conflicted (spec §6).
const (
	markerOurs   = "<<<<<<< HEAD"
	markerSep    = "======="
	markerTheirs = ">>>>>>>"
)

func isConflictedContent(data []byte) bool {
	oursIdx := bytes.Index(data, []byte(markerOurs))
	if oursIdx < 0 {
		return false
	}
	sepIdx := bytes.Index(data[oursIdx:], []byte(markerSep))
	if sepIdx < 0 {
		return false
	}
	sepIdx += oursIdx
	theirsIdx := bytes.Index(data[sepIdx:], []byte(markerTheirs))
	return theirsIdx >= 0
}

// Status is the pure, read-only state classifier: it joins the HEAD tree,
// the index, and the filtered working-tree path set, per path, following
// the decision table in spec §4.4. Two calls against unchanged inputs
// produce byte-identical output.
func (r *Repo) Status() (*StatusReport, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return nil, err
	}

	headHash, _ := r.ReadHeadCommit()
	var headTree map[string]object.Hash
	if headHash != "" {
		commit, err := r.Store.ReadCommit(headHash)
		if err != nil {
			return nil, err
		}
		headTree, err = r.FlattenTree(commit.Tree)
		if err != nil {
			return nil, err
		}
	} else {
		headTree = map[string]object.Hash{}
	}

	workPaths, err := r.WorkingTreePaths()
	if err != nil {
		return nil, err
	}

	allPaths := make(map[string]bool)
	for p := range headTree {
		allPaths[p] = true
	}
	for _, p := range idx.Paths() {
		allPaths[p] = true
	}
	for p := range workPaths {
		allPaths[p] = true
	}

	report := &StatusReport{}
	for p := range allPaths {
		state, alsoModified, err := r.classifyPath(p, headTree, idx, workPaths)
		if err != nil {
			return nil, err
		}
		report.Entries = append(report.Entries, StatusEntry{Path: p, State: state})
		switch state {
		case Staged:
			report.Staged = append(report.Staged, p)
		case Modified:
			report.Modified = append(report.Modified, p)
		case Untracked:
			report.Untracked = append(report.Untracked, p)
		case Deleted:
			report.Deleted = append(report.Deleted, p)
		case Conflicted:
			report.Conflicted = append(report.Conflicted, p)
		}
		// Open question resolution (SPEC_FULL.md §9): a STAGED path whose
		// working copy has since diverged again also lands in the modified
		// set, matching the source's dual-bucket behavior exactly.
		if alsoModified {
			report.Modified = append(report.Modified, p)
		}
	}

	sort.Slice(report.Entries, func(i, j int) bool { return report.Entries[i].Path < report.Entries[j].Path })
	sort.Strings(report.Staged)
	sort.Strings(report.Modified)
	sort.Strings(report.Untracked)
	sort.Strings(report.Deleted)
	sort.Strings(report.Conflicted)

	return report, nil
}

// classifyPath implements the decision table in spec §4.4. Conflict
// detection is orthogonal and overrides every other outcome for a path
// whose working-tree content carries marker blocks. The second return
// value is true when a STAGED path should also be folded into the
// aggregate modified set (see the open-question resolution in status.go).
func (r *Repo) classifyPath(p string, headTree map[string]object.Hash, idx *Index, workPaths map[string]bool) (FileState, bool, error) {
	headHash, inHead := headTree[p]
	indexHash, inIndex := idx.Get(p)
	_, inWork := workPaths[p]

	var workData []byte
	if inWork {
		data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(p)))
		if err != nil {
			return 0, false, wrapError(PathNotFound, err, "read %q", p)
		}
		workData = data
		if isConflictedContent(data) {
			return Conflicted, false, nil
		}
	}

	switch {
	case !inIndex && inHead && inWork:
		if object.Sum(object.KindBlob, workData) == headHash {
			return Unmodified, false, nil
		}
		return Modified, false, nil

	case !inIndex && inHead && !inWork:
		return Deleted, false, nil

	case inIndex && indexHash == "":
		return Deleted, false, nil

	case inIndex && indexHash != "" && inWork:
		if object.Sum(object.KindBlob, workData) == indexHash && headHash == indexHash {
			return Unmodified, false, nil
		}
		return Staged, object.Sum(object.KindBlob, workData) != indexHash, nil

	case inIndex && indexHash != "" && !inWork:
		return Staged, false, nil

	case !inIndex && !inHead && inWork:
		return Untracked, false, nil
	}

	return Unmodified, false, nil
}
