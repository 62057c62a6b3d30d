package repo

import (
	"strings"
	"time"

	"github.com/knotvcs/knot/pkg/object"
)

// effectiveTreeMap merges the index into the HEAD tree's flattened
// path→hash map: index entries overwrite, an empty index hash removes the
// key. This is the snapshot builder's step 1 (spec §4.5).
func effectiveTreeMap(headTree map[string]object.Hash, idx *Index) map[string]object.Hash {
	effective := make(map[string]object.Hash, len(headTree))
	for p, h := range headTree {
		effective[p] = h
	}
	for _, p := range idx.Paths() {
		h, _ := idx.Get(p)
		if h == "" {
			delete(effective, p)
		} else {
			effective[p] = h
		}
	}
	return effective
}

// Commit builds a commit from the current index on top of HEAD and
// advances the current ref (or detached HEAD) to it, then clears the
// index. extraParents supplies additional parents for a merge commit.
//
// If the index is empty and no merge is in progress, this is a no-op
// reported as NothingToCommit.
func (r *Repo) Commit(author, message string, extraParents ...object.Hash) (object.Hash, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return "", err
	}

	if err := r.validateCommit(idx); err != nil {
		return "", err
	}

	if err := r.runHook("pre-commit"); err != nil {
		return "", err
	}
	if err := r.runCommitMsgHook(message); err != nil {
		return "", err
	}

	headHash, err := r.ReadHeadCommit()
	if err != nil {
		return "", err
	}

	var headTree map[string]object.Hash
	if headHash != "" {
		headCommit, err := r.Store.ReadCommit(headHash)
		if err != nil {
			return "", err
		}
		headTree, err = r.FlattenTree(headCommit.Tree)
		if err != nil {
			return "", err
		}
	} else {
		headTree = map[string]object.Hash{}
	}

	effective := effectiveTreeMap(headTree, idx)
	rootTree, err := r.BuildTree(effective)
	if err != nil {
		return "", err
	}

	var parents []object.Hash
	if headHash != "" {
		parents = append(parents, headHash)
	}
	parents = append(parents, extraParents...)

	commit := &object.Commit{
		Tree:      rootTree,
		Parents:   parents,
		Author:    author,
		Timestamp: time.Now().Unix(),
		Message:   message,
	}
	commitHash, err := r.Store.WriteCommit(commit)
	if err != nil {
		return "", err
	}

	head, err := r.ReadHEAD()
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(head, "refs/") {
		if err := r.UpdateRef(head, commitHash); err != nil {
			return "", err
		}
	} else {
		if err := r.SetHEADDetached(commitHash); err != nil {
			return "", err
		}
	}

	if err := r.ClearIndex(); err != nil {
		return "", err
	}
	if err := r.clearMergeState(); err != nil {
		return "", err
	}

	_ = r.runHook("post-commit", string(commitHash))

	return commitHash, nil
}

// Log walks parents from start (typically HEAD), following first-parent
// links, returning up to limit commits newest-first. limit <= 0 means no
// limit.
func (r *Repo) Log(start object.Hash, limit int) ([]object.Hash, []*object.Commit, error) {
	var hashes []object.Hash
	var commits []*object.Commit
	current := start

	for current != "" {
		if limit > 0 && len(commits) >= limit {
			break
		}
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			return nil, nil, err
		}
		hashes = append(hashes, current)
		commits = append(commits, c)
		if len(c.Parents) == 0 {
			break
		}
		current = c.Parents[0]
	}
	return hashes, commits, nil
}
