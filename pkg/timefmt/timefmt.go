// Package timefmt formats booking timestamps for notification and audit
// log text.
package timefmt

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	fullDateLayout      = "Monday, 02 January, 2006"
	shortDateTimeLayout = "Mon, 02/01/2006, 15:04"
)

// FullDate renders a timestamp as "Monday, 02 January, 2006".
func FullDate(t time.Time) string {
	return t.Format(fullDateLayout)
}

// ShortDateTime renders a timestamp as "Mon, 02/01/2006, 15:04".
func ShortDateTime(t time.Time) string {
	return t.Format(shortDateTimeLayout)
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
