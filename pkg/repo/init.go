package repo

import (
	"os"
	"path/filepath"

	"github.com/knotvcs/knot/pkg/object"
)

// Init creates a new repository rooted at path. It fails if a metadata
// directory already exists there.
func Init(path string) (*Repo, error) {
	metaDir := filepath.Join(path, MetaDirName)

	if _, err := os.Stat(metaDir); err == nil {
		return nil, newError(AlreadyExists, "repository already exists at %s", metaDir)
	}

	dirs := []string{
		filepath.Join(metaDir, "objects"),
		filepath.Join(metaDir, "refs", "heads"),
		filepath.Join(metaDir, "refs", "tags"),
		filepath.Join(metaDir, "logs", "refs", "heads"),
		filepath.Join(metaDir, "hooks"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, wrapError(PathNotFound, err, "init: mkdir %s", d)
		}
	}

	headPath := filepath.Join(metaDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/"+DefaultBranch+"\n"), 0o644); err != nil {
		return nil, wrapError(PathNotFound, err, "init: write HEAD")
	}

	seedSampleHooks(metaDir)

	return &Repo{
		RootDir: path,
		MetaDir: metaDir,
		Store:   object.NewStore(metaDir),
	}, nil
}

// Open searches upward from path for a metadata directory and opens the
// repository it finds.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, wrapError(NotARepo, err, "open: resolve path")
	}

	cur := abs
	for {
		metaDir := filepath.Join(cur, MetaDirName)
		if info, err := os.Stat(metaDir); err == nil && info.IsDir() {
			return &Repo{
				RootDir: cur,
				MetaDir: metaDir,
				Store:   object.NewStore(metaDir),
			}, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, newError(NotARepo, "not a knot repository (or any parent up to /)")
		}
		cur = parent
	}
}
