package repo

import (
	"os"
	"regexp"

	"github.com/knotvcs/knot/pkg/object"
)

// refNamePattern rejects the usual set of shell- and ref-syntax-hostile
// characters (spec §4.8); it does not attempt to be a full grammar.
var refNamePattern = regexp.MustCompile(`\.\.|[~^:?*\[\]\\]|@\{`)

// validateRefName checks a branch or tag name against the naming rule
// shared by both.
func validateRefName(name string) error {
	if name == "" {
		return newError(InvalidName, "name must not be empty")
	}
	if name[0] == '-' {
		return newError(InvalidName, "name %q must not start with '-'", name)
	}
	if name[len(name)-1] == '.' {
		return newError(InvalidName, "name %q must not end with '.'", name)
	}
	if len(name) >= 5 && name[len(name)-5:] == ".lock" {
		return newError(InvalidName, "name %q must not end with '.lock'", name)
	}
	if refNamePattern.MatchString(name) {
		return newError(InvalidName, "name %q contains a disallowed character or sequence", name)
	}
	return nil
}

// validateFileOperations confirms the repository is initialized.
func validateFileOperations(r *Repo) error {
	if _, err := os.Stat(r.MetaDir); err != nil {
		return newError(NotARepo, "not a knot repository (or any parent up to root)")
	}
	return nil
}

// validateFileAdd checks that a path is addable: present on disk, tracked
// in HEAD (so a staged deletion makes sense), or already staged.
func (r *Repo) validateFileAdd(path string, idx *Index, headTree map[string]object.Hash) error {
	if err := validateFileOperations(r); err != nil {
		return err
	}
	absPath := r.RootDir + string(os.PathSeparator) + path
	if _, err := os.Stat(absPath); err == nil {
		return nil
	}
	if _, ok := headTree[path]; ok {
		return nil
	}
	if _, ok := idx.Get(path); ok {
		return nil
	}
	return newError(PathNotFound, "pathspec %q did not match any files", path)
}

// validateBranchCreation checks the name and that no ref by that name
// already exists. Tags share this rule.
func (r *Repo) validateBranchCreation(name string) error {
	if err := validateRefName(name); err != nil {
		return err
	}
	if r.IsBranch(name) || r.IsTag(name) {
		return newError(AlreadyExists, "a branch or tag named %q already exists", name)
	}
	return nil
}

// validateCheckout checks that target resolves, isn't already HEAD, and
// that the working tree is clean enough not to be clobbered.
func (r *Repo) validateCheckout(target string) (object.Hash, error) {
	targetHash, err := r.ResolveRef(target)
	if err != nil {
		return "", err
	}

	currentHash, err := r.ReadHeadCommit()
	if err == nil && currentHash == targetHash {
		branch, _ := r.CurrentBranch()
		if branch == target || target == "HEAD" {
			return "", newError(AlreadyAtTarget, "already on %q", target)
		}
	}

	status, err := r.Status()
	if err != nil {
		return "", err
	}
	if !status.Clean() {
		return "", newError(WouldOverwrite, "your local changes would be overwritten by checkout")
	}

	return targetHash, nil
}

// validateMerge checks that no merge is already in progress, the target
// branch exists and is non-empty, it isn't HEAD's own branch, and the
// working tree is clean.
func (r *Repo) validateMerge(branchName string) error {
	if err := validateFileOperations(r); err != nil {
		return err
	}

	inProgress, err := r.MergeInProgress()
	if err != nil {
		return err
	}
	if inProgress {
		return newError(MergeInProgress, "a merge is already in progress")
	}

	if !r.IsBranch(branchName) {
		return newError(MissingRefKind, "branch %q does not exist", branchName)
	}
	theirs, err := r.ResolveRef(branchName)
	if err != nil {
		return err
	}
	if theirs == "" {
		return newError(NothingToCommit, "branch %q has no commits", branchName)
	}

	current, _ := r.CurrentBranch()
	if current != "" && current == branchName {
		return newError(AlreadyAtTarget, "cannot merge a branch into itself")
	}

	status, err := r.Status()
	if err != nil {
		return err
	}
	if !status.Clean() {
		return newError(WouldOverwrite, "working tree must be clean before merging")
	}

	return nil
}

// validateCommit confirms there is something to commit, and that a merge
// commit isn't being completed while conflict markers remain.
func (r *Repo) validateCommit(idx *Index) error {
	mergeInProgress, err := r.MergeInProgress()
	if err != nil {
		return err
	}
	if idx.Len() == 0 && !mergeInProgress {
		return newError(NothingToCommit, "nothing to commit")
	}
	if mergeInProgress {
		status, err := r.Status()
		if err != nil {
			return err
		}
		if len(status.Conflicted) > 0 {
			return newError(ConflictsRemain, "unresolved conflicts remain; fix them and re-add before committing")
		}
	}
	return nil
}
