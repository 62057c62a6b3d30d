package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// Sum computes the canonical hash of an object: SHA-1 over the envelope
// "<kind> <len>\x00<content>", header included. Any change to the header
// changes the hash, which is why the header is folded into the digest
// rather than treated as metadata alongside it.
func Sum(kind Kind, content []byte) Hash {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", kind, len(content))
	h.Write(content)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// Envelope returns the full canonical bytes for an object: header plus
// content. This is exactly what gets hashed and exactly what is persisted.
func Envelope(kind Kind, content []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", kind, len(content))
	out := make([]byte, 0, len(header)+len(content))
	out = append(out, header...)
	out = append(out, content...)
	return out
}

// IsFullHash reports whether s has the shape of a complete object hash.
func IsFullHash(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
