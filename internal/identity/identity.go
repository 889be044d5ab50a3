// Package identity derives document ids and keys from source paths.
//
// An id is a pure function of the record's relative path, so regenerating the
// output tree reproduces every id and every cross-reference between embedded
// and top-level documents without a persisted registry.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/agentic-research/grimoire/internal/transform"
)

const (
	// HashLen is the number of hex characters of the path digest in an id.
	HashLen = 8
	// SlugLen caps the readable prefix of an id.
	SlugLen = 8
)

var orderingPrefixRe = regexp.MustCompile(`^\d+[\s._-]*`)

// Sanitize reduces a file name to its alphanumeric stem: the extension and
// numeric ordering prefixes ("01-", "001_", "3.") are removed, accents are
// folded and everything outside [A-Za-z0-9] is dropped.
func Sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSuffix(name, path.Ext(name))
	name = orderingPrefixRe.ReplaceAllString(name, "")
	folded := transform.Fold(name)
	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > SlugLen {
		s = s[:SlugLen]
	}
	return s
}

// ShortHash is the first HashLen hex characters of SHA-256 over the
// slash-normalized path.
func ShortHash(p string) string {
	sum := sha256.Sum256([]byte(Normalize(p)))
	return hex.EncodeToString(sum[:])[:HashLen]
}

// Normalize converts separators to slashes and cleans the path.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// ID is sanitize(basename(path)) + shortHash(path).
func ID(relPath string) string {
	return Sanitize(relPath) + ShortHash(relPath)
}

// EmbeddedID derives the id of the index-th embedded document with the given
// role ("trait", "action", "page", "result") from its parent's path.
func EmbeddedID(parentPath, role string, index int, name string) string {
	return Sanitize(name) + ShortHash(Normalize(parentPath)+"#"+role+"/"+strconv.Itoa(index))
}

// Key is "!{collection}!{id}".
func Key(collection, id string) string {
	return "!" + collection + "!" + id
}

// EmbeddedKey is "!{collection}.{embedded}!{parentID}.{id}".
func EmbeddedKey(collection, embedded, parentID, id string) string {
	return "!" + collection + "." + embedded + "!" + parentID + "." + id
}
