// utils/datetime.go
package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Bookings reach us from several producers: the admin form posts ISO dates,
// the customer picker emits 12-hour labels like "10:00 am", and spreadsheet
// imports carry locale-formatted strings with weekday prefixes and ordinal
// suffixes ("Mon, 3rd June 2025"). Everything is converted to one canonical
// representation (YYYY-MM-DD, HH:MM:SS) before any comparison or storage.

var (
	canonicalDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	weekdayPrefixRe = regexp.MustCompile(`(?i)^(mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)[a-z]*,?\s+`)
	ordinalSuffixRe = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)\b`)
	clockRe         = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(am|pm)?$`)
)

// Layouts tried after prefix/suffix stripping, most common producers first.
var dateLayouts = []string{
	"2006-01-02",
	"2 January 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"02/01/2006",
	"2/1/2006",
}

// ParseDate normalizes a free-form date string to YYYY-MM-DD.
// Already-canonical input is returned unchanged without re-parsing the
// calendar fields through a timezone (validated only), so a stored date can
// never shift by a day on a round trip.
func ParseDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}

	if canonicalDateRe.MatchString(s) {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "", fmt.Errorf("invalid date %q", raw)
		}
		return s, nil
	}

	s = weekdayPrefixRe.ReplaceAllString(s, "")
	s = ordinalSuffixRe.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
}

// DateOf formats a native time using its local calendar fields. Going through
// UTC here is the classic off-by-one-day bug for dates picked in a browser.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseTime normalizes "5:15 pm", "5:15PM", "17:15" or "17:15:30" to
// canonical HH:MM:SS. 12am maps to 00, 12pm stays 12.
func ParseTime(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unrecognized time %q", raw)
	}

	hour := atoi2(m[1])
	minute := atoi2(m[2])
	second := 0
	if m[3] != "" {
		second = atoi2(m[3])
	}
	meridiem := strings.ToLower(m[4])

	if minute > 59 || second > 59 {
		return "", fmt.Errorf("invalid time %q", raw)
	}

	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid time %q", raw)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid time %q", raw)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return "", fmt.Errorf("invalid time %q", raw)
		}
	}

	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), nil
}

// atoi2 parses the 1-2 digit groups the clock regexp already matched.
func atoi2(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
