// Package repo implements knot's working-tree-facing engine: the index,
// the state classifier, the snapshot builder, the checkout engine, and the
// ancestry and three-way-merge algorithms that sit on top of pkg/object.
package repo

import "github.com/knotvcs/knot/pkg/object"

// MetaDirName is the name of the metadata directory at the root of every
// knot working tree.
const MetaDirName = ".knot"

// DefaultBranch is the branch HEAD points to immediately after Init.
const DefaultBranch = "master"

// Repo is a handle to an opened repository. It carries no mutable state of
// its own beyond the object store handle; every operation is file-scoped
// and reads whatever it needs fresh from disk.
type Repo struct {
	RootDir string        // working tree root
	MetaDir string        // RootDir/.knot
	Store   *object.Store
}
