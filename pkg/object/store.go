package object

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Store is a loose, content-addressed object store rooted at a metadata
// directory. Objects live at objects/<hash[:2]>/<hash[2:]>, uncompressed.
type Store struct {
	root string // metadata directory, e.g. ".knot"
}

// NewStore returns a Store rooted at dir (the repository metadata directory).
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

func (s *Store) path(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether an object with the given hash is present.
func (s *Store) Has(h Hash) bool {
	_, err := os.Stat(s.path(h))
	return err == nil
}

// Write stores content under the given kind and returns its hash. Writes
// are idempotent: identical content always yields the same hash and the
// same path, and an existing object is never rewritten.
func (s *Store) Write(kind Kind, content []byte) (Hash, error) {
	h := Sum(kind, content)
	if s.Has(h) {
		return h, nil
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("write object: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("write object: tempfile: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(Envelope(kind, content)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write object: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write object: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path(h)); err != nil {
		return "", fmt.Errorf("write object: rename: %w", err)
	}
	return h, nil
}

// Read returns the kind and content of the object stored under h.
func (s *Store) Read(h Hash) (Kind, []byte, error) {
	raw, err := os.ReadFile(s.path(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &MissingObjectError{Hash: h}
		}
		return "", nil, fmt.Errorf("read object %s: %w", h, err)
	}

	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", nil, &CorruptObjectError{Hash: h, Reason: "no NUL separator in header"}
	}
	header := string(raw[:nul])
	content := raw[nul+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, &CorruptObjectError{Hash: h, Reason: fmt.Sprintf("malformed header %q", header)}
	}
	kind := Kind(parts[0])
	declared, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, &CorruptObjectError{Hash: h, Reason: fmt.Sprintf("non-numeric length %q", parts[1])}
	}
	if declared != len(content) {
		return "", nil, &CorruptObjectError{Hash: h, Reason: fmt.Sprintf("declared length %d, actual %d", declared, len(content))}
	}
	return kind, content, nil
}

// WriteBlob encodes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) { return s.Write(KindBlob, EncodeBlob(b)) }

// ReadBlob reads and decodes a Blob, failing if the stored kind differs.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	kind, content, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if kind != KindBlob {
		return nil, &CorruptObjectError{Hash: h, Reason: fmt.Sprintf("expected blob, found %s", kind)}
	}
	return DecodeBlob(content), nil
}

// WriteTree encodes and stores a Tree.
func (s *Store) WriteTree(t *Tree) (Hash, error) { return s.Write(KindTree, EncodeTree(t)) }

// ReadTree reads and decodes a Tree, failing if the stored kind differs.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	kind, content, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if kind != KindTree {
		return nil, &CorruptObjectError{Hash: h, Reason: fmt.Sprintf("expected tree, found %s", kind)}
	}
	return DecodeTree(content)
}

// WriteCommit encodes and stores a Commit, rejecting arities above 2.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	if len(c.Parents) > 2 {
		return "", fmt.Errorf("write commit: %d parents exceeds maximum of 2", len(c.Parents))
	}
	return s.Write(KindCommit, EncodeCommit(c))
}

// ReadCommit reads and decodes a Commit, failing if the stored kind differs.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	kind, content, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if kind != KindCommit {
		return nil, &CorruptObjectError{Hash: h, Reason: fmt.Sprintf("expected commit, found %s", kind)}
	}
	return DecodeCommit(content)
}

// ResolveShort expands a hex prefix of at least 6 and fewer than 40 chars to
// the single full hash it identifies, scanning the sharded object tree.
func (s *Store) ResolveShort(prefix string) (Hash, error) {
	if len(prefix) >= 40 {
		return Hash(prefix), nil
	}
	if len(prefix) < 6 {
		return "", fmt.Errorf("resolve short hash: prefix %q shorter than minimum of 6", prefix)
	}

	shardQuery := prefix[:2]
	objectsDir := filepath.Join(s.root, "objects")
	shards, err := os.ReadDir(objectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &MissingObjectError{Hash: Hash(prefix)}
		}
		return "", fmt.Errorf("resolve short hash: %w", err)
	}

	var matches []Hash
	for _, shard := range shards {
		name := shard.Name()
		if len(shardQuery) == 2 && name != shardQuery {
			continue
		}
		if len(shardQuery) == 1 && !strings.HasPrefix(name, shardQuery) {
			continue
		}
		rest, err := os.ReadDir(filepath.Join(objectsDir, name))
		if err != nil {
			continue
		}
		for _, f := range rest {
			full := name + f.Name()
			if strings.HasPrefix(full, prefix) {
				matches = append(matches, Hash(full))
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", &MissingObjectError{Hash: Hash(prefix)}
	case 1:
		return matches[0], nil
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
		return "", &AmbiguousShortHashError{Prefix: prefix, Matches: matches}
	}
}
