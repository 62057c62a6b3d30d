package repo

import (
	"os"
	"path/filepath"

	"github.com/knotvcs/knot/pkg/object"
)

// Add stages the given repo-relative paths. A path that no longer exists on
// disk but is tracked in HEAD is staged as a deletion; "." expands to every
// path currently tracked or present (and not ignored) in the working tree.
func (r *Repo) Add(paths []string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}

	resolved, err := r.expandAddTargets(paths)
	if err != nil {
		return err
	}

	headHash, _ := r.ReadHeadCommit()
	var headTree map[string]object.Hash
	if headHash != "" {
		commit, err := r.Store.ReadCommit(headHash)
		if err != nil {
			return err
		}
		headTree, err = r.FlattenTree(commit.Tree)
		if err != nil {
			return err
		}
	} else {
		headTree = map[string]object.Hash{}
	}

	for _, p := range resolved {
		if err := r.validateFileAdd(p, idx, headTree); err != nil {
			return err
		}

		absPath := filepath.Join(r.RootDir, filepath.FromSlash(p))
		data, err := os.ReadFile(absPath)
		if os.IsNotExist(err) {
			// Staged deletion: file was tracked in HEAD, now gone.
			idx.Set(p, "")
			continue
		}
		if err != nil {
			return wrapError(PathNotFound, err, "add %q", p)
		}
		h, err := r.Store.WriteBlob(&object.Blob{Data: data})
		if err != nil {
			return err
		}
		idx.Set(p, h)
	}

	return r.WriteIndex(idx)
}

// expandAddTargets turns the CLI's ["."] or explicit path list into a
// concrete set of repo-relative paths worth considering.
func (r *Repo) expandAddTargets(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == "." {
			workPaths, err := r.WorkingTreePaths()
			if err != nil {
				return nil, err
			}
			idx, err := r.ReadIndex()
			if err != nil {
				return nil, err
			}
			seen := make(map[string]bool)
			for wp := range workPaths {
				if !seen[wp] {
					seen[wp] = true
					out = append(out, wp)
				}
			}
			for _, sp := range idx.Paths() {
				if h, _ := idx.Get(sp); h != "" && !seen[sp] {
					if _, err := os.Stat(filepath.Join(r.RootDir, filepath.FromSlash(sp))); os.IsNotExist(err) {
						seen[sp] = true
						out = append(out, sp)
					}
				}
			}
			continue
		}
		norm, err := NormalizePath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, norm)
	}
	return out, nil
}
