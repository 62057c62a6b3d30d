package object

import "testing"

func TestSumIncludesHeader(t *testing.T) {
	data := []byte("hello\n")
	h := Sum(KindBlob, data)
	if !IsFullHash(string(h)) {
		t.Fatalf("Sum returned non-hash-shaped value %q", h)
	}

	// Changing the declared kind changes the hash even though content is
	// identical, because the header is folded into the digest.
	other := Sum(KindTree, data)
	if h == other {
		t.Fatalf("Sum(blob, x) == Sum(tree, x); header must affect the hash")
	}
}

func TestEncodeDecodeBlobRoundTrip(t *testing.T) {
	b := &Blob{Data: []byte("package main\n")}
	got := DecodeBlob(EncodeBlob(b))
	if string(got.Data) != string(b.Data) {
		t.Fatalf("round trip mismatch: got %q want %q", got.Data, b.Data)
	}
}

func TestEncodeTreeSortsAndFormats(t *testing.T) {
	tr := &Tree{Entries: []TreeEntry{
		{Name: "z.txt", Kind: KindBlob, Hash: "aaaa"},
		{Name: "a.txt", Kind: KindBlob, Hash: "bbbb"},
		{Name: "sub", Kind: KindTree, Hash: "cccc"},
	}}
	content := EncodeTree(tr)
	want := "blob bbbb a.txt\ntree cccc sub\nblob aaaa z.txt\n"
	if string(content) != want {
		t.Fatalf("got %q want %q", content, want)
	}

	decoded, err := DecodeTree(content)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Entries) != 3 || decoded.Entries[0].Name != "a.txt" {
		t.Fatalf("unexpected decode: %+v", decoded.Entries)
	}
}

func TestDecodeTreeRejectsDuplicateNames(t *testing.T) {
	content := []byte("blob aaaa x\nblob bbbb x\n")
	if _, err := DecodeTree(content); err == nil {
		t.Fatal("expected error for duplicate tree entry name")
	}
}

func TestDecodeTreeRejectsSlashInName(t *testing.T) {
	content := []byte("blob aaaa a/b\n")
	if _, err := DecodeTree(content); err == nil {
		t.Fatal("expected error for name containing '/'")
	}
}

func TestEncodeDecodeCommitRoundTrip(t *testing.T) {
	c := &Commit{
		Tree:      "deadbeef",
		Parents:   []Hash{"p1", "p2"},
		Author:    "Ada Lovelace",
		Timestamp: 1700000000,
		Message:   "merge feature\n",
	}
	decoded, err := DecodeCommit(EncodeCommit(c))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Tree != c.Tree || decoded.Author != c.Author || decoded.Timestamp != c.Timestamp {
		t.Fatalf("mismatch: %+v", decoded)
	}
	if len(decoded.Parents) != 2 || decoded.Parents[0] != "p1" || decoded.Parents[1] != "p2" {
		t.Fatalf("parent mismatch: %+v", decoded.Parents)
	}
	if decoded.Message != c.Message {
		t.Fatalf("message mismatch: %q vs %q", decoded.Message, c.Message)
	}
}

func TestDecodeCommitRejectsTooManyParents(t *testing.T) {
	raw := []byte("tree t\nparent a\nparent b\nparent c\nauthor x 1\n\nmsg\n")
	if _, err := DecodeCommit(raw); err == nil {
		t.Fatal("expected error for 3 parents")
	}
}
