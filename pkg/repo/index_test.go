package repo

import (
	"testing"

	"github.com/knotvcs/knot/pkg/object"
)

func TestIndexSetGetUnset(t *testing.T) {
	idx := NewIndex()
	idx.Set("a.txt", object.Hash("aaaa"))
	idx.Set("b.txt", object.Hash("bbbb"))

	if h, ok := idx.Get("a.txt"); !ok || h != "aaaa" {
		t.Fatalf("Get(a.txt) = (%q, %v)", h, ok)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}

	idx.Unset("a.txt")
	if _, ok := idx.Get("a.txt"); ok {
		t.Fatal("a.txt should be gone after Unset")
	}
	if idx.Len() != 1 {
		t.Fatalf("Len() after Unset = %d, want 1", idx.Len())
	}
}

func TestIndexWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	idx := NewIndex()
	idx.Set("a.txt", object.Hash("aaaa"))
	idx.Set("sub/b.txt", object.Hash(""))
	if err := r.WriteIndex(idx); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	loaded, err := r.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if h, ok := loaded.Get("a.txt"); !ok || h != "aaaa" {
		t.Fatalf("loaded a.txt = (%q, %v)", h, ok)
	}
	if h, ok := loaded.Get("sub/b.txt"); !ok || h != "" {
		t.Fatalf("loaded sub/b.txt = (%q, %v), want empty-hash deletion", h, ok)
	}
}

func TestIndexPreservesInsertionOrderOnRewrite(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	idx := NewIndex()
	idx.Set("z.txt", object.Hash("1"))
	idx.Set("a.txt", object.Hash("2"))
	idx.Set("m.txt", object.Hash("3"))
	if err := r.WriteIndex(idx); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	loaded, err := r.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	want := []string{"z.txt", "a.txt", "m.txt"}
	got := loaded.Paths()
	if len(got) != len(want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizePathRejectsEscapes(t *testing.T) {
	if _, err := NormalizePath("../etc/passwd"); err == nil {
		t.Error("expected error for path escaping repo root")
	}
	if _, err := NormalizePath("/abs/path"); err == nil {
		t.Error("expected error for absolute path")
	}
	got, err := NormalizePath("./a/../b.txt")
	if err != nil {
		t.Fatalf("NormalizePath: %v", err)
	}
	if got != "b.txt" {
		t.Errorf("NormalizePath = %q, want %q", got, "b.txt")
	}
}
