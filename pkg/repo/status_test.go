package repo

import (
	"testing"
)

func TestStatusUnmodifiedAfterCommit(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !report.Clean() {
		t.Fatalf("report = %+v, want clean", report)
	}
	for _, e := range report.Entries {
		if e.State != Unmodified {
			t.Errorf("entry %s state = %s, want unmodified", e.Path, e.State)
		}
	}
}

func TestStatusModifiedTrackedFile(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, r, "a.txt", []byte("changed\n"))

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Modified) != 1 || report.Modified[0] != "a.txt" {
		t.Fatalf("Modified = %v, want [a.txt]", report.Modified)
	}
	if report.Clean() {
		t.Fatal("report.Clean() = true, want false")
	}
}

func TestStatusStagedNewFile(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, r, "b.txt", []byte("new\n"))
	if err := r.Add([]string{"b.txt"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Staged) != 1 || report.Staged[0] != "b.txt" {
		t.Fatalf("Staged = %v, want [b.txt]", report.Staged)
	}
}

func TestStatusUntrackedFile(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, r, "scratch.txt", []byte("loose\n"))

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Untracked) != 1 || report.Untracked[0] != "scratch.txt" {
		t.Fatalf("Untracked = %v, want [scratch.txt]", report.Untracked)
	}
	if !report.Clean() {
		t.Fatal("report.Clean() = false, want true (untracked files don't count as dirty)")
	}
}

func TestStatusDeletedTrackedFile(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := removeWorkingFile(t, r, "a.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Deleted) != 1 || report.Deleted[0] != "a.txt" {
		t.Fatalf("Deleted = %v, want [a.txt]", report.Deleted)
	}
}

// Open-question #2 resolution: a staged path whose working copy has since
// diverged again lands in both Staged and the aggregate Modified set.
func TestStatusStagedThenFurtherModified(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, r, "a.txt", []byte("v2\n"))
	if err := r.Add([]string{"a.txt"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	writeFile(t, r, "a.txt", []byte("v3\n"))

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Staged) != 1 || report.Staged[0] != "a.txt" {
		t.Fatalf("Staged = %v, want [a.txt]", report.Staged)
	}
	if len(report.Modified) != 1 || report.Modified[0] != "a.txt" {
		t.Fatalf("Modified = %v, want [a.txt]", report.Modified)
	}
}

// Testable property #7: Status is a pure read-only classifier — two
// back-to-back calls against unchanged inputs produce identical output.
func TestStatusIsPure(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, r, "b.txt", []byte("new\n"))
	if err := r.Add([]string{"b.txt"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	writeFile(t, r, "c.txt", []byte("loose\n"))

	first, err := r.Status()
	if err != nil {
		t.Fatalf("Status (1st): %v", err)
	}
	second, err := r.Status()
	if err != nil {
		t.Fatalf("Status (2nd): %v", err)
	}

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry count differs: %d vs %d", len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		if first.Entries[i] != second.Entries[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first.Entries[i], second.Entries[i])
		}
	}
}

func TestStatusConflictedFileDetected(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, r, "a.txt", []byte(markerOurs+"\nB\n"+markerSep+"\nA\n"+markerTheirs+" a.txt\n"))

	report, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(report.Conflicted) != 1 || report.Conflicted[0] != "a.txt" {
		t.Fatalf("Conflicted = %v, want [a.txt]", report.Conflicted)
	}
	if report.Clean() {
		t.Fatal("report.Clean() = true, want false when a path is conflicted")
	}
}
