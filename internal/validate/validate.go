// Package validate holds the string predicates applied to console input
// before anything reaches the database.
package validate

import (
	"time"
	"unicode/utf8"
)

// MaxText is the longest free-text or name value a field accepts, in
// characters rather than bytes.
const MaxText = 30

// MaxDigits bounds digit strings kept as text, such as phone numbers.
const MaxDigits = 20

// DateLayout is month/day/year; single-digit month and day are accepted.
const DateLayout = "1/2/2006"

type TextResult int

const (
	TextValid TextResult = iota
	TextNonLetter
	TextTooLong
)

func (r TextResult) String() string {
	switch r {
	case TextValid:
		return "valid"
	case TextNonLetter:
		return "contains-non-letter"
	case TextTooLong:
		return "too-long"
	}
	return "unknown"
}

func IsEmpty(s string) bool { return len(s) == 0 }

// IsNumeric reports whether every byte is an ASCII digit. The empty string
// passes; check IsEmpty first.
func IsNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseDate parses a strict month/day/year date. Out-of-range days such as
// 02/30 are errors, not rolled over into the next month.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ISODate renders a date the way every supported engine accepts it as a
// DATE literal.
func ISODate(t time.Time) string { return t.Format(time.DateOnly) }

// FitsText reports whether s is at most MaxText characters long.
func FitsText(s string) bool { return utf8.RuneCountInString(s) <= MaxText }

// CheckText classifies a name-like value: at most MaxText characters, ASCII
// letters only. Length is checked before content.
func CheckText(s string) TextResult {
	if !FitsText(s) {
		return TextTooLong
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return TextNonLetter
	}
	return TextValid
}

// WeekOf returns the Monday and Sunday of the week containing t.
func WeekOf(t time.Time) (time.Time, time.Time) {
	offset := (int(t.Weekday()) + 6) % 7
	start := t.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
