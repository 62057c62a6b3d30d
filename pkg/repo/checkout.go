package repo

import (
	"os"
	"path/filepath"
)

// Checkout switches the working tree and HEAD to target, which may be
// "HEAD", a branch name, a tag name, or a full/short commit hash.
func (r *Repo) Checkout(target string) error {
	targetHash, err := r.validateCheckout(target)
	if err != nil {
		return err
	}

	prevHead, err := r.ReadHEAD()
	if err != nil {
		return err
	}

	targetTree, err := r.treeOf(targetHash)
	if err != nil {
		return err
	}
	workPaths, err := r.WorkingTreePaths()
	if err != nil {
		return err
	}
	matcher := NewIgnoreMatcher(r.RootDir)

	for p := range workPaths {
		if _, keep := targetTree[p]; keep {
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

	for p, h := range targetTree {
		b, err := r.Store.ReadBlob(h)
		if err != nil {
			return err
		}
		absPath := filepath.Join(r.RootDir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return wrapError(PathNotFound, err, "mkdir for %q", p)
		}
		if err := os.WriteFile(absPath, b.Data, 0o644); err != nil {
			return wrapError(PathNotFound, err, "write %q", p)
		}
	}

	if err := r.ClearIndex(); err != nil {
		return err
	}

	branchFlag := "0"
	if r.IsBranch(target) {
		if err := r.SetHEADToRef("refs/heads/" + target); err != nil {
			return err
		}
		branchFlag = "1"
	} else {
		if err := r.SetHEADDetached(targetHash); err != nil {
			return err
		}
	}

	newHead, err := r.ReadHEAD()
	if err != nil {
		return err
	}
	_ = r.runHook("post-checkout", prevHead, newHead, branchFlag)

	return nil
}

// CheckoutFile restores a single tracked path from HEAD without moving
// HEAD or running the post-checkout hook.
func (r *Repo) CheckoutFile(path string) error {
	headHash, err := r.ReadHeadCommit()
	if err != nil {
		return err
	}
	tree, err := r.treeOf(headHash)
	if err != nil {
		return err
	}
	h, ok := tree[path]
	if !ok {
		return newError(PathNotFound, "pathspec %q did not match any file known to HEAD", path)
	}
	b, err := r.Store.ReadBlob(h)
	if err != nil {
		return err
	}
	absPath := filepath.Join(r.RootDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return wrapError(PathNotFound, err, "mkdir for %q", path)
	}
	if err := os.WriteFile(absPath, b.Data, 0o644); err != nil {
		return wrapError(PathNotFound, err, "write %q", path)
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	idx.Unset(path)
	return r.WriteIndex(idx)
}
