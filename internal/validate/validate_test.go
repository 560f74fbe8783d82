package validate_test

import (
	"strings"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/validate"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, validate.IsEmpty(""))
	assert.False(t, validate.IsEmpty(" "))
	assert.False(t, validate.IsEmpty("a"))
}

func TestIsNumeric(t *testing.T) {
	cases := map[string]bool{
		"0":        true,
		"0123":     true,
		"98765432": true,
		"-1":       false,
		"+1":       false,
		"1.5":      false,
		"12a":      false,
		" 12":      false,
		"١٢":       false, // non-ASCII digits
	}
	for in, want := range cases {
		assert.Equal(t, want, validate.IsNumeric(in), "IsNumeric(%q)", in)
	}
}

func TestIsNumeric_Property(t *testing.T) {
	digitsOnly := func(b []byte) bool {
		s := make([]byte, len(b))
		for i, c := range b {
			s[i] = '0' + c%10
		}
		return validate.IsNumeric(string(s))
	}
	require.NoError(t, quick.Check(digitsOnly, nil))

	withNonDigit := func(prefix []byte, c byte) bool {
		if c >= '0' && c <= '9' {
			c = 'x'
		}
		s := make([]byte, 0, len(prefix)+1)
		for _, p := range prefix {
			s = append(s, '0'+p%10)
		}
		s = append(s, c)
		return !validate.IsNumeric(string(s))
	}
	require.NoError(t, quick.Check(withNonDigit, nil))
}

func TestIsDate(t *testing.T) {
	assert.False(t, validate.IsDate("02/30/2024"), "no rollover")
	assert.False(t, validate.IsDate("13/01/2024"), "month out of range")
	assert.True(t, validate.IsDate("01/15/2024"))
	assert.True(t, validate.IsDate("1/5/2024"))
	assert.True(t, validate.IsDate("02/29/2024"), "leap day")
	assert.False(t, validate.IsDate("02/29/2023"))
	assert.False(t, validate.IsDate("2024-01-15"))
	assert.False(t, validate.IsDate("01/15/24"))
	assert.False(t, validate.IsDate("01/15/2024x"))
	assert.False(t, validate.IsDate(""))
}

func TestISODate(t *testing.T) {
	d, err := validate.ParseDate("3/7/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-07", validate.ISODate(d))
}

func TestCheckText(t *testing.T) {
	assert.Equal(t, validate.TextValid, validate.CheckText("Anna"))
	assert.Equal(t, validate.TextValid, validate.CheckText(strings.Repeat("a", 30)))
	assert.Equal(t, validate.TextTooLong, validate.CheckText(strings.Repeat("a", 31)))
	assert.Equal(t, validate.TextNonLetter, validate.CheckText("abc123"))
	assert.Equal(t, validate.TextNonLetter, validate.CheckText("1abc"))
	assert.Equal(t, validate.TextNonLetter, validate.CheckText("Mary Ann"))
	assert.Equal(t, validate.TextTooLong, validate.CheckText(strings.Repeat("1", 31)), "length wins")
	assert.Equal(t, validate.TextNonLetter, validate.CheckText(strings.Repeat("é", 20)), "counted in characters")
}

func TestFitsTextCountsCharacters(t *testing.T) {
	assert.True(t, validate.FitsText(strings.Repeat("é", 30)))
	assert.False(t, validate.FitsText(strings.Repeat("é", 31)))
	assert.True(t, validate.FitsText("Chemin des Pâquerettes, Genève"))
	assert.Equal(t, "contains-non-letter", validate.TextNonLetter.String())
}

func TestWeekOf(t *testing.T) {
	wed := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	start, end := validate.WeekOf(wed)
	assert.Equal(t, "2024-01-15", validate.ISODate(start))
	assert.Equal(t, "2024-01-21", validate.ISODate(end))

	sun := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	start, end = validate.WeekOf(sun)
	assert.Equal(t, "2024-01-15", validate.ISODate(start))
	assert.Equal(t, "2024-01-21", validate.ISODate(end))

	mon := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	start, _ = validate.WeekOf(mon)
	assert.Equal(t, "2024-01-15", validate.ISODate(start))
}
