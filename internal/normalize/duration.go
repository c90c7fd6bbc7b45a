// Package normalize turns raw telephony records into display-ready rows.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ZeroDuration is the formatted value of an absent or zero duration
const ZeroDuration = "00:00"

// FormatDuration formats an optional number of seconds as mm:ss.
// Minutes are not clamped, so 3725 seconds renders as "62:05".
func FormatDuration(seconds *int) string {
	if seconds == nil {
		return ZeroDuration
	}
	return FormatSeconds(*seconds)
}

// FormatSeconds formats a number of seconds as mm:ss. Negative values are clamped to zero.
func FormatSeconds(seconds int) string {
	if seconds <= 0 {
		return ZeroDuration
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Capitalize upper-cases the first letter and lower-cases the rest
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
