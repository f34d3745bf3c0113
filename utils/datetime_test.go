package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate_CanonicalPassthrough(t *testing.T) {
	for _, in := range []string{"2025-06-03", "2024-02-29", "1999-12-31"} {
		got, err := ParseDate(in)
		assert.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestParseDate_OrdinalAndWeekdayStripping(t *testing.T) {
	want := "2025-06-03"

	for _, in := range []string{
		"Mon, 3rd June 2025",
		"Monday, 3rd June 2025",
		"3rd June 2025",
		"3 June 2025",
		"June 3, 2025",
		"Tue 3rd June 2025",
	} {
		got, err := ParseDate(in)
		assert.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseDate_OrdinalVariants(t *testing.T) {
	cases := map[string]string{
		"1st July 2025":      "2025-07-01",
		"2nd July 2025":      "2025-07-02",
		"21st December 2025": "2025-12-21",
		"22nd December 2025": "2025-12-22",
		"23rd December 2025": "2025-12-23",
		"4th July 2025":      "2025-07-04",
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		assert.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "2025-02-30", "32nd June 2025", "2025-13-01"} {
		_, err := ParseDate(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestDateOf_UsesLocalCalendarFields(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 23:30 local is already the next day in UTC; the local date must win.
	val := time.Date(2025, 6, 3, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-06-03", DateOf(val))
}

func TestParseTime_TwelveAndTwentyFourHourEquivalence(t *testing.T) {
	a, err := ParseTime("5:15 pm")
	assert.NoError(t, err)
	b, err := ParseTime("17:15")
	assert.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "17:15:00", a)
}

func TestParseTime_NoonAndMidnight(t *testing.T) {
	got, err := ParseTime("12:00 am")
	assert.NoError(t, err)
	assert.Equal(t, "00:00:00", got)

	got, err = ParseTime("12:00 pm")
	assert.NoError(t, err)
	assert.Equal(t, "12:00:00", got)
}

func TestParseTime_Formats(t *testing.T) {
	cases := map[string]string{
		"9:00 am":  "09:00:00",
		"9:00AM":   "09:00:00",
		"2:00 PM":  "14:00:00",
		"2:00pm":   "14:00:00",
		"09:00":    "09:00:00",
		"18:00":    "18:00:00",
		"17:15:30": "17:15:30",
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		assert.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "25:00", "13:00 pm", "0:30 am", "10:61", "noon"} {
		_, err := ParseTime(in)
		assert.Error(t, err, "input %q", in)
	}
}
