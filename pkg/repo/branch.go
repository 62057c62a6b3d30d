package repo

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/knotvcs/knot/pkg/object"
)

// CreateBranch creates a new branch ref pointing at startHash.
func (r *Repo) CreateBranch(name string, startHash object.Hash) error {
	if err := r.validateBranchCreation(name); err != nil {
		return err
	}
	return r.UpdateRef("refs/heads/"+name, startHash)
}

// DeleteBranch removes a branch ref. Deleting the currently checked-out
// branch is rejected.
func (r *Repo) DeleteBranch(name string) error {
	current, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	if current == name {
		return newError(WouldOverwrite, "cannot delete the currently checked out branch %q", name)
	}
	if !r.IsBranch(name) {
		return newError(MissingRefKind, "branch %q does not exist", name)
	}
	old, _ := r.ReadRef("refs/heads/" + name)
	path := filepath.Join(r.MetaDir, "refs", "heads", name)
	if err := os.Remove(path); err != nil {
		return wrapError(PathNotFound, err, "delete branch %q", name)
	}
	_ = r.appendReflog("refs/heads/"+name, old, "")
	return nil
}

// BranchInfo is one entry in ListBranches' output.
type BranchInfo struct {
	Name    string
	Hash    object.Hash
	Current bool
}

// ListBranches returns every branch, sorted by name, flagging the current
// one.
func (r *Repo) ListBranches() ([]BranchInfo, error) {
	dir := filepath.Join(r.MetaDir, "refs", "heads")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapError(PathNotFound, err, "list branches")
	}

	current, err := r.CurrentBranch()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []BranchInfo
	for _, n := range names {
		h, err := r.ReadRef("refs/heads/" + n)
		if err != nil {
			return nil, err
		}
		out = append(out, BranchInfo{Name: n, Hash: h, Current: n == current})
	}
	return out, nil
}
