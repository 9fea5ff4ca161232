package simulate

import "time"

// DefaultWeekEnd returns the end of the "week of interest" used to build a
// Simulator's WeekOutcomes windows when the caller doesn't supply one
// explicitly: the closest Sunday at or before today+7 days.
func DefaultWeekEnd(today time.Time) time.Time {
	weekEnd := today.AddDate(0, 0, 7)
	for weekEnd.Weekday() != time.Sunday {
		weekEnd = weekEnd.AddDate(0, 0, -1)
	}
	return weekEnd
}
