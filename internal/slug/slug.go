// Package slug canonicalizes post identifiers so that view counting and
// lookups always address the same row.
package slug

import (
	"hash/fnv"
	"strconv"
	"strings"
)

const cutset = "/ \t\r\n"

// Normalize strips surrounding whitespace and path separators, so
// "a", "/a/" and " a " all map to "a". Idempotent.
func Normalize(raw string) string {
	return strings.Trim(raw, cutset)
}

// Hash returns the FNV-1a 32-bit digest of s in base36. Used to derive
// per-post dedupe cookie names; collisions only cost an under-count.
func Hash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
