package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSlotGrid(t *testing.T) {
	grid := BuildSlotGrid("09:00", "11:00")
	require.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, grid)
}

func TestBuildSlotGridWrapsPastMidnight(t *testing.T) {
	grid := BuildSlotGrid("22:00", "01:00")
	require.Equal(t, []string{"22:00", "22:30", "23:00", "23:30", "00:00", "00:30"}, grid)
}

func TestAvailableSlotsExcludesBookedSlot(t *testing.T) {
	// Amina has one appointment 10:00-10:30. A 30-minute request must
	// exclude 10:00 and keep both neighbours.
	grid := BuildSlotGrid("09:00", "19:00")
	existing := []SlotInterval{{StartTime: "10:00", Duration: 30}}

	slots := AvailableSlots(grid, "09:00", "19:00", existing, 30)

	require.NotContains(t, slots, "10:00")
	require.Contains(t, slots, "09:30")
	require.Contains(t, slots, "10:30")
}

func TestBackToBackBookingsDoNotConflict(t *testing.T) {
	grid := BuildSlotGrid("09:00", "12:00")
	existing := []SlotInterval{
		{StartTime: "09:00", Duration: 60},
		{StartTime: "11:00", Duration: 30},
	}

	// The 10:00-11:00 gap ends exactly when the 11:00 booking begins.
	slots := AvailableSlots(grid, "09:00", "12:00", existing, 60)
	require.Contains(t, slots, "10:00")

	require.False(t, Conflicts("09:00", "12:00", existing, "10:00", 60))
}

func TestAvailableSlotsNeverOverlapExisting(t *testing.T) {
	grid := BuildSlotGrid("09:00", "19:00")
	existing := []SlotInterval{
		{StartTime: "09:30", Duration: 45},
		{StartTime: "12:00", Duration: 90},
		{StartTime: "17:00", Duration: 30},
	}

	for _, duration := range []int{30, 45, 60, 120} {
		slots := AvailableSlots(grid, "09:00", "19:00", existing, duration)
		for _, slot := range slots {
			a := TimeToMinutes(slot)
			b := a + duration
			for _, e := range existing {
				c := TimeToMinutes(e.StartTime)
				d := c + e.Duration
				require.Falsef(t, a < d && c < b,
					"slot %s (%d min) overlaps booking at %s", slot, duration, e.StartTime)
			}
		}
	}
}

func TestPreOpeningBookingStillBlocksSlots(t *testing.T) {
	// A dashboard booking may start before opening. In a plain daytime
	// window it must not be shifted past midnight, or the 09:00 slot would
	// be offered against an 08:30-09:30 booking.
	grid := BuildSlotGrid("09:00", "19:00")
	existing := []SlotInterval{{StartTime: "08:30", Duration: 60}}

	slots := AvailableSlots(grid, "09:00", "19:00", existing, 30)

	require.NotContains(t, slots, "09:00")
	require.Contains(t, slots, "09:30")

	require.True(t, Conflicts("09:00", "19:00", existing, "09:00", 30))
	require.False(t, Conflicts("09:00", "19:00", existing, "09:30", 30))
}

func TestTrailingSlotsNotClipped(t *testing.T) {
	// A 60-minute request ending past the last grid entry is still offered.
	grid := BuildSlotGrid("09:00", "11:00")
	slots := AvailableSlots(grid, "09:00", "11:00", nil, 60)
	require.Contains(t, slots, "10:30")
}

func TestAvailableSlotsWrappedWindow(t *testing.T) {
	grid := BuildSlotGrid("22:00", "02:00")
	existing := []SlotInterval{{StartTime: "23:30", Duration: 60}}

	slots := AvailableSlots(grid, "22:00", "02:00", existing, 30)

	require.Contains(t, slots, "23:00")
	require.NotContains(t, slots, "23:30")
	require.NotContains(t, slots, "00:00")
	require.Contains(t, slots, "00:30")
}

func TestConflictsDetectsOverlap(t *testing.T) {
	existing := []SlotInterval{{StartTime: "10:00", Duration: 30}}

	require.True(t, Conflicts("09:00", "19:00", existing, "09:45", 30))
	require.True(t, Conflicts("09:00", "19:00", existing, "10:15", 30))
	require.False(t, Conflicts("09:00", "19:00", existing, "09:30", 30))
	require.False(t, Conflicts("09:00", "19:00", existing, "10:30", 30))
}

func TestTimeRoundTrip(t *testing.T) {
	require.Equal(t, 630, TimeToMinutes("10:30"))
	require.Equal(t, "10:30", MinutesToTime(630))
	require.Equal(t, "00:30", MinutesToTime(24*60+30))
}
