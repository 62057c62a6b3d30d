package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EncodeBlob returns a Blob's canonical content: its raw bytes, verbatim.
func EncodeBlob(b *Blob) []byte {
	return append([]byte(nil), b.Data...)
}

// DecodeBlob builds a Blob from canonical content.
func DecodeBlob(content []byte) *Blob {
	return &Blob{Data: append([]byte(nil), content...)}
}

// EncodeTree returns a Tree's canonical content: one "<kind> <hash> <name>\n"
// line per entry, sorted by Name ascending. The caller is responsible for
// rejecting duplicate names and names containing '/' or NUL before calling;
// EncodeTree itself only sorts and formats.
func EncodeTree(t *Tree) []byte {
	entries := append([]TreeEntry(nil), t.Entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s %s %s\n", e.Kind, e.Hash, e.Name)
	}
	return buf.Bytes()
}

// DecodeTree parses canonical Tree content produced by EncodeTree.
func DecodeTree(content []byte) (*Tree, error) {
	t := &Tree{}
	text := strings.TrimSuffix(string(content), "\n")
	if text == "" {
		return t, nil
	}
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("decode tree: malformed entry %q", line)
		}
		kind := Kind(parts[0])
		if kind != KindBlob && kind != KindTree {
			return nil, fmt.Errorf("decode tree: unknown entry kind %q", parts[0])
		}
		name := parts[2]
		if strings.Contains(name, "/") || strings.Contains(name, "\x00") {
			return nil, fmt.Errorf("decode tree: invalid entry name %q", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("decode tree: duplicate entry name %q", name)
		}
		seen[name] = true
		t.Entries = append(t.Entries, TreeEntry{Name: name, Kind: kind, Hash: Hash(parts[1])})
	}
	return t, nil
}

// EncodeCommit returns a Commit's canonical content: header lines, a blank
// line, then the message.
func EncodeCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree)
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s %d\n", c.Author, c.Timestamp)
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// DecodeCommit parses canonical Commit content produced by EncodeCommit.
func DecodeCommit(content []byte) (*Commit, error) {
	idx := bytes.Index(content, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("decode commit: missing header/message separator")
	}
	header := string(content[:idx])
	message := string(content[idx+2:])

	c := &Commit{Message: message}
	for _, line := range strings.Split(header, "\n") {
		key, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("decode commit: malformed header line %q", line)
		}
		switch key {
		case "tree":
			c.Tree = Hash(rest)
		case "parent":
			c.Parents = append(c.Parents, Hash(rest))
		case "author":
			name, tsStr, ok := lastSpaceCut(rest)
			if !ok {
				return nil, fmt.Errorf("decode commit: malformed author line %q", line)
			}
			ts, err := strconv.ParseInt(tsStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("decode commit: bad timestamp %q: %w", tsStr, err)
			}
			c.Author = name
			c.Timestamp = ts
		default:
			return nil, fmt.Errorf("decode commit: unknown header key %q", key)
		}
	}
	if len(c.Parents) > 2 {
		return nil, fmt.Errorf("decode commit: %d parents exceeds maximum of 2", len(c.Parents))
	}
	return c, nil
}

// lastSpaceCut splits on the final space in s, for "author <name> <ts>"
// headers where name may itself contain spaces.
func lastSpaceCut(s string) (before, after string, ok bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
