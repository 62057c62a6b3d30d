package repo

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/knotvcs/knot/pkg/object"
)

// CreateTag creates a lightweight tag pointing at targetHash. Tags never
// move once created; the naming rule is the same as for branches.
func (r *Repo) CreateTag(name string, targetHash object.Hash) error {
	if err := r.validateBranchCreation(name); err != nil {
		return err
	}
	return r.UpdateRef("refs/tags/"+name, targetHash)
}

// TagInfo is one entry in ListTags' output.
type TagInfo struct {
	Name string
	Hash object.Hash
}

// ListTags returns every tag, sorted by name.
func (r *Repo) ListTags() ([]TagInfo, error) {
	dir := filepath.Join(r.MetaDir, "refs", "tags")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapError(PathNotFound, err, "list tags")
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []TagInfo
	for _, n := range names {
		h, err := r.ReadRef("refs/tags/" + n)
		if err != nil {
			return nil, err
		}
		out = append(out, TagInfo{Name: n, Hash: h})
	}
	return out, nil
}
