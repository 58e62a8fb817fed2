package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make derives a URL-safe slug from a display name: lower-cased, runs of
// non-alphanumeric characters collapsed to single hyphens.
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// ExistsFunc reports whether a slug is already taken in the target
// collection. A database failure propagates unchanged to the caller.
type ExistsFunc func(slug string) (bool, error)

// Unique derives a slug from name and, if the base slug is taken, appends an
// incrementing numeric suffix (-2, -3, ...) until an unused one is found.
// Two racing creations with the same name can both observe "unused"; the
// duplicate then surfaces as a unique-index violation at insert time.
func Unique(name string, exists ExistsFunc) (string, error) {
	base := Make(name)
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
