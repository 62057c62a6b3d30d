package repo

import "testing"

func TestTagCreateAndList(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	h, err := r.Commit("a", "c1")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateTag("v1", h); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	tags, err := r.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "v1" || tags[0].Hash != h {
		t.Fatalf("ListTags = %+v", tags)
	}
}

func TestTagNeverMoves(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	h1, err := r.Commit("a", "c1")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateTag("v1", h1); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	writeFile(t, r, "a.txt", []byte("world\n"))
	if err := r.Add([]string{"a.txt"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Commit("a", "c2"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	tags, err := r.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if tags[0].Hash != h1 {
		t.Errorf("tag moved: got %s, want %s", tags[0].Hash, h1)
	}
}

func TestTagSharesBranchNamespaceValidation(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello\n"))
	h, err := r.Commit("a", "c1")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateBranch("release", h); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.CreateTag("release", h); err == nil {
		t.Fatal("expected error creating a tag with the same name as an existing branch")
	}
}
