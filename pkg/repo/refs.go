package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knotvcs/knot/pkg/object"
)

// headRefPrefix is written before a branch name to make HEAD symbolic.
const headRefPrefix = "ref: "

// ReadHEAD returns the raw content of HEAD: either a "refs/heads/<name>"
// ref path (symbolic) or a commit hash (detached).
func (r *Repo) ReadHEAD() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.MetaDir, "HEAD"))
	if err != nil {
		return "", wrapError(NotARepo, err, "read HEAD")
	}
	content := strings.TrimRight(string(data), "\n")
	if strings.HasPrefix(content, headRefPrefix) {
		return strings.TrimPrefix(content, headRefPrefix), nil
	}
	return content, nil
}

// IsDetached reports whether HEAD currently holds a raw commit hash rather
// than a symbolic ref.
func (r *Repo) IsDetached() (bool, error) {
	head, err := r.ReadHEAD()
	if err != nil {
		return false, err
	}
	return !strings.HasPrefix(head, "refs/"), nil
}

// CurrentBranch returns the branch name HEAD points to, or "" if HEAD is
// detached.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.ReadHEAD()
	if err != nil {
		return "", err
	}
	const prefix = "refs/heads/"
	if strings.HasPrefix(head, prefix) {
		return strings.TrimPrefix(head, prefix), nil
	}
	return "", nil
}

// ReadRef returns the trimmed content of the named ref file (e.g.
// "refs/heads/main"), or "" with no error if the ref does not exist yet
// (an unborn branch).
func (r *Repo) ReadRef(refPath string) (object.Hash, error) {
	data, err := os.ReadFile(filepath.Join(r.MetaDir, filepath.FromSlash(refPath)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", wrapError(MissingRefKind, err, "read ref %q", refPath)
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}

// ReadHeadCommit resolves HEAD down to a commit hash, following one
// symbolic level. It returns "" with no error for an unborn branch.
func (r *Repo) ReadHeadCommit() (object.Hash, error) {
	head, err := r.ReadHEAD()
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(head, "refs/") {
		return r.ReadRef(head)
	}
	return object.Hash(head), nil
}

// ResolveRef resolves a name (HEAD, a branch, a tag, a full ref path, or a
// full/short commit hash) to a commit hash.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	if name == "HEAD" || name == "" {
		h, err := r.ReadHeadCommit()
		if err != nil {
			return "", err
		}
		if h == "" {
			return "", newError(MissingRefKind, "HEAD does not point to a commit yet")
		}
		return h, nil
	}

	var candidates []string
	if strings.HasPrefix(name, "refs/") {
		candidates = []string{name}
	} else {
		candidates = []string{"refs/heads/" + name, "refs/tags/" + name}
	}
	for _, refPath := range candidates {
		if h, err := r.ReadRef(refPath); err == nil && h != "" {
			return h, nil
		}
	}

	if object.IsFullHash(name) {
		if _, err := r.Store.ReadCommit(object.Hash(name)); err != nil {
			if _, missing := err.(*object.MissingObjectError); missing {
				return "", wrapError(MissingRefKind, err, "resolve %q", name)
			}
			return "", wrapError(NotACommit, err, "%q is not a commit", name)
		}
		return object.Hash(name), nil
	}
	if len(name) >= 6 && len(name) < 40 {
		full, err := r.Store.ResolveShort(name)
		if err != nil {
			return "", err
		}
		if _, cerr := r.Store.ReadCommit(full); cerr != nil {
			return "", wrapError(NotACommit, cerr, "%q is not a commit", name)
		}
		return full, nil
	}

	return "", newError(MissingRefKind, "cannot resolve %q to a branch, tag, or commit", name)
}

// IsBranch reports whether name is an existing branch.
func (r *Repo) IsBranch(name string) bool {
	h, err := r.ReadRef("refs/heads/" + name)
	return err == nil && h != ""
}

// IsTag reports whether name is an existing tag.
func (r *Repo) IsTag(name string) bool {
	h, err := r.ReadRef("refs/tags/" + name)
	return err == nil && h != ""
}

// UpdateRef atomically writes hash to the named ref path (write-temp, then
// rename) and appends a reflog entry.
func (r *Repo) UpdateRef(refPath string, h object.Hash) error {
	old, _ := r.ReadRef(refPath)
	full := filepath.Join(r.MetaDir, filepath.FromSlash(refPath))
	if err := atomicWriteFile(full, []byte(string(h)+"\n")); err != nil {
		return wrapError(PathNotFound, err, "update ref %q", refPath)
	}
	_ = r.appendReflog(refPath, old, h)
	return nil
}

// SetHEADToRef makes HEAD symbolic, pointing at refPath.
func (r *Repo) SetHEADToRef(refPath string) error {
	old, _ := r.ReadHeadCommit()
	full := filepath.Join(r.MetaDir, "HEAD")
	if err := atomicWriteFile(full, []byte(headRefPrefix+refPath+"\n")); err != nil {
		return wrapError(PathNotFound, err, "set HEAD to %q", refPath)
	}
	newHash, _ := r.ReadRef(refPath)
	_ = r.appendReflog("HEAD", old, newHash)
	return nil
}

// SetHEADDetached makes HEAD point directly at a commit hash.
func (r *Repo) SetHEADDetached(h object.Hash) error {
	old, _ := r.ReadHeadCommit()
	full := filepath.Join(r.MetaDir, "HEAD")
	if err := atomicWriteFile(full, []byte(string(h)+"\n")); err != nil {
		return wrapError(PathNotFound, err, "set HEAD detached")
	}
	_ = r.appendReflog("HEAD", old, h)
	return nil
}

func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// appendReflog appends one line to logs/<refPath> recording a ref movement.
// The reflog is advisory: a failure here never aborts the ref update that
// triggered it.
func (r *Repo) appendReflog(refPath string, old, newHash object.Hash) error {
	logPath := filepath.Join(r.MetaDir, "logs", filepath.FromSlash(refPath))
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	line := fmt.Sprintf("%s %s %d\n", zeroIfEmpty(old), zeroIfEmpty(newHash), time.Now().Unix())
	_, err = f.WriteString(line)
	return err
}

func zeroIfEmpty(h object.Hash) object.Hash {
	if h == "" {
		return object.Hash("0000000000000000000000000000000000000000")
	}
	return h
}

// ReflogEntry is one recorded ref movement.
type ReflogEntry struct {
	Old       object.Hash
	New       object.Hash
	Timestamp int64
}

// Reflog returns the recorded movements of refPath, oldest first.
func (r *Repo) Reflog(refPath string) ([]ReflogEntry, error) {
	logPath := filepath.Join(r.MetaDir, "logs", filepath.FromSlash(refPath))
	data, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapError(MissingRefKind, err, "read reflog %q", refPath)
	}
	var entries []ReflogEntry
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		var old, newHash string
		var ts int64
		if _, err := fmt.Sscanf(line, "%s %s %d", &old, &newHash, &ts); err != nil {
			continue
		}
		entries = append(entries, ReflogEntry{Old: object.Hash(old), New: object.Hash(newHash), Timestamp: ts})
	}
	return entries, nil
}
