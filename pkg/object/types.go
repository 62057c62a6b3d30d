// Package object implements knot's content-addressed object model: the
// blob/tree/commit variants, their canonical byte encoding, and the loose
// object store that persists them under a sharded directory layout.
package object

// Hash is a 40-character lowercase hex-encoded SHA-1 digest identifying an
// object's canonical bytes. The empty Hash is never a valid stored object;
// it is used elsewhere (the index) as a sentinel for "staged deletion".
type Hash string

// Kind identifies which of the three object variants a set of bytes holds.
type Kind string

const (
	KindBlob   Kind = "blob"
	KindTree   Kind = "tree"
	KindCommit Kind = "commit"
)

// Blob wraps raw file content, stored verbatim.
type Blob struct {
	Data []byte
}

// TreeEntry is a single named child of a Tree, either a Blob or a nested
// Tree. Entries are kept sorted by Name ascending (byte-wise) whenever a
// Tree is built or decoded.
type TreeEntry struct {
	Name string
	Kind Kind // KindBlob or KindTree
	Hash Hash
}

// Tree lists the named children of a directory snapshot.
type Tree struct {
	Entries []TreeEntry
}

// Commit names a tree, zero or more parents, an author, and a message.
type Commit struct {
	Tree      Hash
	Parents   []Hash
	Author    string
	Timestamp int64 // epoch seconds
	Message   string
}
