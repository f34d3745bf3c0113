package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinutesOfDay(t *testing.T) {
	m, err := MinutesOfDay("09:00:00")
	assert.NoError(t, err)
	assert.Equal(t, 540, m)

	m, err = MinutesOfDay("17:45")
	assert.NoError(t, err)
	assert.Equal(t, 1065, m)

	_, err = MinutesOfDay("bad")
	assert.Error(t, err)

	_, err = MinutesOfDay("24:00")
	assert.Error(t, err)
}

func TestMinutesLabel(t *testing.T) {
	assert.Equal(t, "09:00:00", MinutesLabel(540))
	assert.Equal(t, "17:45:00", MinutesLabel(1065))
	assert.Equal(t, "00:00:00", MinutesLabel(0))
}

func TestOverlaps_HalfOpenSemantics(t *testing.T) {
	// 10:00-10:30 vs 10:15-10:45 overlap.
	assert.True(t, Overlaps(600, 630, 615, 645))
	// Touching endpoints do not overlap.
	assert.False(t, Overlaps(600, 630, 630, 660))
	assert.False(t, Overlaps(630, 660, 600, 630))
	// Containment overlaps.
	assert.True(t, Overlaps(600, 660, 615, 630))
}

func TestFreeSlots_EmptyCalendar(t *testing.T) {
	slots := FreeSlots(30, nil)

	// 09:00 through 17:30 inclusive on a 15-minute grid.
	assert.Len(t, slots, 35)
	assert.Equal(t, "09:00:00", slots[0])
	assert.Equal(t, "17:30:00", slots[len(slots)-1])
}

func TestFreeSlots_ExcludesOverlapping(t *testing.T) {
	// One existing booking 10:00-10:30, 30-minute service.
	booked := []TimeRange{{Start: 600, End: 630}}
	slots := FreeSlots(30, booked)

	assert.NotContains(t, slots, "09:45:00") // would run into the booking
	assert.NotContains(t, slots, "10:00:00")
	assert.NotContains(t, slots, "10:15:00")
	assert.Contains(t, slots, "10:30:00") // touching boundary is fine
	assert.Contains(t, slots, "09:30:00")
}

func TestFreeSlots_DurationBoundedByWindowEnd(t *testing.T) {
	slots := FreeSlots(60, nil)

	// A 60-minute service cannot start after 17:00.
	assert.Equal(t, "17:00:00", slots[len(slots)-1])
	assert.NotContains(t, slots, "17:15:00")
}

func TestFreeSlots_SortedAndUnique(t *testing.T) {
	booked := []TimeRange{{Start: 600, End: 630}, {Start: 720, End: 780}}
	slots := FreeSlots(45, booked)

	seen := make(map[string]bool)
	prev := ""
	for _, s := range slots {
		assert.False(t, seen[s], "duplicate slot %s", s)
		seen[s] = true
		assert.Greater(t, s, prev)
		prev = s
	}
}

func TestFreeSlots_Restartable(t *testing.T) {
	booked := []TimeRange{{Start: 600, End: 630}}

	first := FreeSlots(30, booked)
	second := FreeSlots(30, booked)
	assert.Equal(t, first, second)
}

func TestFreeSlots_InvalidDuration(t *testing.T) {
	assert.Nil(t, FreeSlots(0, nil))
	assert.Nil(t, FreeSlots(-15, nil))
}
