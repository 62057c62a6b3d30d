package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knotvcs/knot/pkg/object"
)

// Index is the staging-area state: a path→hash map where an empty hash
// means "staged deletion". Paths are repo-relative and forward-slash
// normalized.
type Index struct {
	// order preserves insertion order so rewrites are deterministic.
	order   []string
	entries map[string]object.Hash
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]object.Hash)}
}

// Set stages path at hash (or as a deletion, if hash is empty), preserving
// the path's original position if it was already staged.
func (idx *Index) Set(path string, hash object.Hash) {
	if _, exists := idx.entries[path]; !exists {
		idx.order = append(idx.order, path)
	}
	idx.entries[path] = hash
}

// Unset removes path from the index entirely (not the same as staging a
// deletion, which keeps the path present with an empty hash).
func (idx *Index) Unset(path string) {
	if _, exists := idx.entries[path]; !exists {
		return
	}
	delete(idx.entries, path)
	for i, p := range idx.order {
		if p == path {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}

// Get returns the staged hash for path and whether it is present at all.
func (idx *Index) Get(path string) (object.Hash, bool) {
	h, ok := idx.entries[path]
	return h, ok
}

// Len returns the number of staged paths (including staged deletions).
func (idx *Index) Len() int { return len(idx.order) }

// Paths returns staged paths in insertion order.
func (idx *Index) Paths() []string {
	return append([]string(nil), idx.order...)
}

func indexPath(metaDir string) string {
	return filepath.Join(metaDir, "index")
}

// ReadIndex loads the index file, tolerating a missing file as empty.
func (r *Repo) ReadIndex() (*Index, error) {
	data, err := os.ReadFile(indexPath(r.MetaDir))
	if err != nil {
		if os.IsNotExist(err) {
			return NewIndex(), nil
		}
		return nil, wrapError(PathNotFound, err, "read index")
	}

	idx := NewIndex()
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		path, hash, ok := strings.Cut(line, "=")
		if !ok {
			return nil, newError(PathNotFound, "malformed index line %q", line)
		}
		idx.Set(path, object.Hash(hash))
	}
	return idx, nil
}

// WriteIndex persists the index atomically, one "path=hash" line per entry
// in insertion order.
func (r *Repo) WriteIndex(idx *Index) error {
	var b strings.Builder
	for _, p := range idx.order {
		fmt.Fprintf(&b, "%s=%s\n", p, idx.entries[p])
	}
	if err := atomicWriteFile(indexPath(r.MetaDir), []byte(b.String())); err != nil {
		return wrapError(PathNotFound, err, "write index")
	}
	return nil
}

// ClearIndex replaces the index with an empty one.
func (r *Repo) ClearIndex() error {
	return r.WriteIndex(NewIndex())
}

// NormalizePath validates and forward-slash-normalizes a repo-relative
// path, rejecting absolute paths and ".." segments.
func NormalizePath(p string) (string, error) {
	p = filepath.ToSlash(filepath.Clean(p))
	if p == "." {
		return "", newError(PathNotFound, "empty path")
	}
	if strings.HasPrefix(p, "/") {
		return "", newError(PathNotFound, "path %q must be repo-relative", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", newError(PathNotFound, "path %q escapes the repository root", p)
		}
	}
	return p, nil
}
