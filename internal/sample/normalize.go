package sample

import (
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizedCacheSize bounds the column-name cache; registries have tens of columns.
const normalizedCacheSize = 512

// normalized caches NormalizeName results. Batch tables resolve the same few
// column names once per batch, from several goroutines.
//
//nolint:gochecknoglobals // process-wide memo, safe for concurrent use
var normalized = mustCache(normalizedCacheSize)

func mustCache(size int) *lru.Cache[string, string] {
	c, err := lru.New[string, string](size)
	if err != nil {
		panic(err)
	}
	return c
}

// StripAccents removes combining marks, so "Família" becomes "Familia".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeName is the comparison key used for column names: accents stripped,
// case folded and surrounding whitespace removed. It is safe for concurrent use.
func NormalizeName(s string) string {
	if key, ok := normalized.Get(s); ok {
		return key
	}
	// A Caser carries state and cannot be shared between goroutines.
	key := cases.Fold().String(StripAccents(strings.TrimSpace(s)))
	normalized.Add(s, key)
	return key
}
