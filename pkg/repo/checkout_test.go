package repo

import (
	"bytes"
	"testing"
)

// S3 — branch and switch.
func TestCheckoutBranchAndSwitch(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit c1: %v", err)
	}
	head, err := r.ReadHeadCommit()
	if err != nil {
		t.Fatalf("ReadHeadCommit: %v", err)
	}
	if err := r.CreateBranch("feature", head); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	writeFile(t, r, "a.txt", []byte("hi\n"))
	if err := r.Add([]string{"a.txt"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("ada", "c3"); err != nil {
		t.Fatalf("Commit c3: %v", err)
	}

	if err := r.Checkout("feature"); err != nil {
		t.Fatalf("Checkout(feature): %v", err)
	}

	got := readFile(t, r, "a.txt")
	if !bytes.Equal(got, []byte("hello\n")) {
		t.Errorf("a.txt after checkout feature = %q, want %q", got, "hello\n")
	}

	headRaw, err := r.ReadHEAD()
	if err != nil {
		t.Fatalf("ReadHEAD: %v", err)
	}
	if headRaw != "refs/heads/feature" {
		t.Errorf("HEAD = %q, want refs/heads/feature", headRaw)
	}
}

// S6 — checkout guard: a dirty working tree blocks checkout and leaves
// everything byte-unchanged.
func TestCheckoutGuardWouldOverwriteChanges(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	h1, err := r.Commit("ada", "c1")
	if err != nil {
		t.Fatalf("Commit c1: %v", err)
	}

	writeFile(t, r, "b.txt", []byte("b\n"))
	if err := r.Add([]string{"b.txt"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	h2, err := r.Commit("ada", "c2")
	if err != nil {
		t.Fatalf("Commit c2: %v", err)
	}

	// Modify the tracked file without staging.
	writeFile(t, r, "a.txt", []byte("dirty\n"))

	headBefore, err := r.ReadHEAD()
	if err != nil {
		t.Fatalf("ReadHEAD: %v", err)
	}

	if err := r.Checkout(string(h1)); !Is(err, WouldOverwrite) {
		t.Fatalf("Checkout err = %v, want WouldOverwrite", err)
	}

	got := readFile(t, r, "a.txt")
	if !bytes.Equal(got, []byte("dirty\n")) {
		t.Errorf("a.txt changed despite rejected checkout: %q", got)
	}

	headAfter, err := r.ReadHEAD()
	if err != nil {
		t.Fatalf("ReadHEAD: %v", err)
	}
	if headBefore != headAfter {
		t.Errorf("HEAD moved despite rejected checkout: %q -> %q", headBefore, headAfter)
	}
	_ = h2
}

func TestCheckoutNoOpOnCurrentHead(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.Checkout("HEAD"); !Is(err, AlreadyAtTarget) {
		t.Fatalf("Checkout(HEAD) err = %v, want AlreadyAtTarget", err)
	}
	if err := r.Checkout("master"); !Is(err, AlreadyAtTarget) {
		t.Fatalf("Checkout(master) err = %v, want AlreadyAtTarget", err)
	}
}

func TestCheckoutFileRestoresSinglePath(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	if _, err := r.Commit("ada", "c1"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, r, "a.txt", []byte("scratch\n"))

	if err := r.CheckoutFile("a.txt"); err != nil {
		t.Fatalf("CheckoutFile: %v", err)
	}
	got := readFile(t, r, "a.txt")
	if !bytes.Equal(got, []byte("hello\n")) {
		t.Errorf("a.txt after CheckoutFile = %q, want %q", got, "hello\n")
	}

	headRaw, err := r.ReadHEAD()
	if err != nil {
		t.Fatalf("ReadHEAD: %v", err)
	}
	if headRaw != "refs/heads/master" {
		t.Errorf("CheckoutFile moved HEAD: %q", headRaw)
	}
}
