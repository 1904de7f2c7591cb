// utils/dates.go
package utils

import "time"

// DayFormat is the calendar-day layout used for all stored dates.
const DayFormat = "2006-01-02"

func Today() string {
	return time.Now().Format(DayFormat)
}
