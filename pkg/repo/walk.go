package repo

import (
	"io/fs"
	"path/filepath"
)

// WorkingTreePaths enumerates repo-relative, forward-slash paths of every
// trackable file under the working tree, honoring the ignore matcher.
func (r *Repo) WorkingTreePaths() (map[string]bool, error) {
	ic := NewIgnoreMatcher(r.RootDir)
	paths := make(map[string]bool)

	err := filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if ic.IsIgnored(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		paths[rel] = true
		return nil
	})
	if err != nil {
		return nil, wrapError(PathNotFound, err, "walk working tree")
	}
	return paths, nil
}
