package repo

import (
	"os"
	"os/exec"
	"path/filepath"
)

// sampleHookNames mirrors the full standard hook set, even though only a
// subset is ever invoked by this engine. Seeded disabled (non-executable)
// so init doesn't surprise anyone with live hooks.
var sampleHookNames = []string{
	"pre-commit", "commit-msg", "post-commit", "post-checkout", "post-merge",
	"pre-push", "pre-rebase", "prepare-commit-msg", "update",
}

func seedSampleHooks(metaDir string) {
	hooksDir := filepath.Join(metaDir, "hooks")
	for _, name := range sampleHookNames {
		path := filepath.Join(hooksDir, name+".sample")
		_ = os.WriteFile(path, []byte(formatHookBody(name)), 0o644)
	}
}

func formatHookBody(name string) string {
	return "#!/bin/sh\n# Sample " + name + " hook. Rename without the .sample suffix and make\n# executable to enable.\nexit 0\n"
}

// runHook invokes <metaDir>/hooks/<name> if present and executable. A
// missing or non-executable hook counts as passed without being run.
func (r *Repo) runHook(name string, args ...string) error {
	path := filepath.Join(r.MetaDir, "hooks", name)
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if info.Mode()&0o111 == 0 {
		return nil
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = r.RootDir
	cmd.Env = append(os.Environ(),
		"GIT_DIR="+r.MetaDir,
		"GIT_WORK_TREE="+r.RootDir,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return wrapError(HookRejected, err, "hook %q", name)
	}
	return nil
}

// runCommitMsgHook writes message to a temp file and passes its path to the
// commit-msg hook, as git does.
func (r *Repo) runCommitMsgHook(message string) error {
	path := filepath.Join(r.MetaDir, "COMMIT_EDITMSG")
	if err := os.WriteFile(path, []byte(message), 0o644); err != nil {
		return wrapError(HookRejected, err, "write commit message for hook")
	}
	defer os.Remove(path)
	return r.runHook("commit-msg", path)
}
