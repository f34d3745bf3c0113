// utils/slots.go
package utils

import (
	"fmt"
)

// The booking grid is fixed: 15-minute candidate starts between 09:00 and
// 18:00. A candidate is bookable only if [start, start+duration) fits inside
// the window and overlaps no active booking.
const (
	GridOpenMinutes  = 9 * 60
	GridCloseMinutes = 18 * 60
	GridStepMinutes  = 15
)

// TimeRange is a half-open [Start, End) interval in minutes since midnight.
type TimeRange struct {
	Start int
	End   int
}

// MinutesOfDay converts a canonical HH:MM:SS (or HH:MM) value to minutes
// since midnight. Seconds are ignored; the grid has minute resolution.
func MinutesOfDay(canonical string) (int, error) {
	if len(canonical) < 5 || canonical[2] != ':' {
		return 0, fmt.Errorf("invalid canonical time %q", canonical)
	}
	h := int(canonical[0]-'0')*10 + int(canonical[1]-'0')
	m := int(canonical[3]-'0')*10 + int(canonical[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid canonical time %q", canonical)
	}
	return h*60 + m, nil
}

// MinutesLabel renders minutes since midnight as canonical HH:MM:SS.
func MinutesLabel(m int) string {
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// Overlaps reports whether two half-open intervals share any point.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// FreeSlots returns the bookable start labels for a service of the given
// duration, ascending and without duplicates. It is a pure function of the
// booked intervals, so callers may re-run it speculatively.
func FreeSlots(durationMinutes int, booked []TimeRange) []string {
	if durationMinutes <= 0 {
		return nil
	}

	slots := make([]string, 0, (GridCloseMinutes-GridOpenMinutes)/GridStepMinutes)
	for start := GridOpenMinutes; start+durationMinutes <= GridCloseMinutes; start += GridStepMinutes {
		end := start + durationMinutes
		free := true
		for _, b := range booked {
			if Overlaps(start, end, b.Start, b.End) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, MinutesLabel(start))
		}
	}
	return slots
}
