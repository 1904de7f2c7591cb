package services

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotInterval is an already-booked stretch of a staff member's day.
type SlotInterval struct {
	StartTime string // HH:MM
	Duration  int    // minutes
}

const slotStepMinutes = 30

const minutesPerDay = 24 * 60

// TimeToMinutes converts "HH:MM" to minutes since midnight. Malformed
// input maps to 0; callers validate formats at the boundary.
func TimeToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// MinutesToTime renders minutes since midnight as "HH:MM", wrapping past
// midnight.
func MinutesToTime(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// normalizer maps "HH:MM" to comparable minutes for the given operating
// window. Only when the window wraps past midnight (closing at or before
// opening) do times earlier than opening sort after it; in a plain daytime
// window a pre-opening time stays where it is, so bookings outside the
// window still collide with the slots they overlap.
func normalizer(opening, closing string) func(string) int {
	open := TimeToMinutes(opening)
	wraps := TimeToMinutes(closing) <= open
	return func(t string) int {
		m := TimeToMinutes(t)
		if wraps && m < open {
			m += minutesPerDay
		}
		return m
	}
}

// BuildSlotGrid returns the half-hour slot catalog spanning the operating
// window. A closing time at or before the opening time means the window
// wraps past midnight.
func BuildSlotGrid(opening, closing string) []string {
	start := TimeToMinutes(opening)
	end := TimeToMinutes(closing)
	if end <= start {
		end += minutesPerDay
	}

	var slots []string
	for m := start; m < end; m += slotStepMinutes {
		slots = append(slots, MinutesToTime(m))
	}
	return slots
}

// Conflicts reports whether a booking at startTime for duration minutes
// would overlap any existing interval, using the same normalization and
// overlap rule as AvailableSlots.
func Conflicts(opening, closing string, existing []SlotInterval, startTime string, duration int) bool {
	normalize := normalizer(opening, closing)

	a := normalize(startTime)
	b := a + duration
	for _, e := range existing {
		c := normalize(e.StartTime)
		d := c + e.Duration
		if a < d && c < b {
			return true
		}
	}
	return false
}

// AvailableSlots filters grid down to the slots where a booking of the
// given duration would not overlap any existing interval. Two intervals
// [a,b) and [c,d) overlap iff a < d && c < b, so back-to-back bookings do
// not conflict. Slots whose computed end runs past the last grid entry are
// still offered. Pure: no I/O, inputs are everything it knows.
func AvailableSlots(grid []string, opening, closing string, existing []SlotInterval, duration int) []string {
	normalize := normalizer(opening, closing)

	type interval struct{ start, end int }
	booked := make([]interval, 0, len(existing))
	for _, e := range existing {
		start := normalize(e.StartTime)
		booked = append(booked, interval{start: start, end: start + e.Duration})
	}

	available := make([]string, 0, len(grid))
	for _, slot := range grid {
		a := normalize(slot)
		b := a + duration
		free := true
		for _, iv := range booked {
			if a < iv.end && iv.start < b {
				free = false
				break
			}
		}
		if free {
			available = append(available, slot)
		}
	}
	return available
}
