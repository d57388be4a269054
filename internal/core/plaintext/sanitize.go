// Package plaintext prepares user submitted bodies for scoring.
// It only removes what a reader never sees (zero-width format characters,
// markup); letters, case, whitespace and control characters are left alone
// so plain text scores exactly as the detector would score it raw
package plaintext

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// invisible drops format runes and turns each invalid byte into U+FFFD,
// which is how the detector reads an invalid byte anyway.
// Stateless, so one instance serves every goroutine
var invisible = runes.Remove(runes.In(unicode.Cf))

// Sanitize drops Unicode format characters (Cf) such as zero-width spaces,
// joiners and the BOM, and replaces invalid UTF-8 byte by byte.
// Clean input is returned unchanged without allocating
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	out, _, err := transform.String(invisible, s)
	if err != nil {
		return s
	}
	return out
}

func clean(s string) bool {
	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if unicode.Is(unicode.Cf, r) {
			return false
		}
		i += size
	}
	return true
}
