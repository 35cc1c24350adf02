package cargo

import (
	"strings"
	"unicode"
)

// Dasherize converts a camel-style option key into a cargo flag name:
// every uppercase rune after the first becomes a hyphen followed by its
// lowercase form. "unknownArg" becomes "unknown-arg".
func Dasherize(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)

	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
