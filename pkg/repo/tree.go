package repo

import (
	"path"
	"sort"

	"github.com/knotvcs/knot/pkg/object"
)

// FlattenTree walks a tree object recursively and returns a path→blob-hash
// map using forward-slash paths relative to the tree root. An empty hash
// produces an empty map (the "no commit yet" case).
func (r *Repo) FlattenTree(h object.Hash) (map[string]object.Hash, error) {
	out := make(map[string]object.Hash)
	if h == "" {
		return out, nil
	}
	if err := r.flattenTreeInto(h, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) flattenTreeInto(h object.Hash, prefix string, out map[string]object.Hash) error {
	t, err := r.Store.ReadTree(h)
	if err != nil {
		return err
	}
	for _, e := range t.Entries {
		full := e.Name
		if prefix != "" {
			full = path.Join(prefix, e.Name)
		}
		if e.Kind == object.KindTree {
			if err := r.flattenTreeInto(e.Hash, full, out); err != nil {
				return err
			}
		} else {
			out[full] = e.Hash
		}
	}
	return nil
}

// BuildTree materializes a tree DAG from a flat path→hash map (the
// "effective tree map" of spec §4.5) and returns the root tree hash. Every
// ancestor directory, including the root, is emitted even when empty.
func (r *Repo) BuildTree(effective map[string]object.Hash) (object.Hash, error) {
	dirs := groupByDirectory(effective)
	return r.emitTreeDir(dirs, effective, "")
}

// groupByDirectory buckets file paths by their immediate parent directory,
// seeding every ancestor directory (including "") so empty directories
// still appear as a group.
func groupByDirectory(effective map[string]object.Hash) map[string][]string {
	groups := make(map[string][]string)
	groups[""] = groups[""] // ensure root exists

	for p := range effective {
		dir := path.Dir(p)
		if dir == "." {
			dir = ""
		}
		groups[dir] = append(groups[dir], p)

		// Seed every ancestor directory of dir, so an emptied-out directory
		// with only subdirectories still gets a group.
		for d := dir; d != ""; {
			parent := path.Dir(d)
			if parent == "." {
				parent = ""
			}
			if _, ok := groups[parent]; !ok {
				groups[parent] = nil
			}
			d = parent
		}
	}
	return groups
}

func childDirs(groups map[string][]string, dir string) []string {
	seen := make(map[string]bool)
	var out []string
	for candidate := range groups {
		if candidate == dir {
			continue
		}
		parent := path.Dir(candidate)
		if parent == "." {
			parent = ""
		}
		if parent == dir && !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Repo) emitTreeDir(groups map[string][]string, effective map[string]object.Hash, dir string) (object.Hash, error) {
	var entries []object.TreeEntry

	for _, filePath := range groups[dir] {
		entries = append(entries, object.TreeEntry{
			Name: path.Base(filePath),
			Kind: object.KindBlob,
			Hash: effective[filePath],
		})
	}

	for _, childDir := range childDirs(groups, dir) {
		childHash, err := r.emitTreeDir(groups, effective, childDir)
		if err != nil {
			return "", err
		}
		entries = append(entries, object.TreeEntry{
			Name: path.Base(childDir),
			Kind: object.KindTree,
			Hash: childHash,
		})
	}

	return r.Store.WriteTree(&object.Tree{Entries: entries})
}
