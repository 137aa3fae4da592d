package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLen is the minimum accepted password length at registration.
const MinPasswordLen = 6

var (
	handleRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidHandle reports whether s is an acceptable player handle: 3 to 20
// characters, letters, digits and underscore only.
func ValidHandle(s string) bool { return handleRe.MatchString(s) }

// ValidEmail applies the usual pragmatic check: one @, a dotted domain, no
// whitespace. Anything stricter belongs to a confirmation mail, not a regex.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(value) > max {
		v[field] = "too_long"
	}
}
