package aggregation

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// Window returns the inclusive calendar-date bounds of the period relative to now.
// Custom periods with a missing bound fall back to the current month.
func Window(period domain.PeriodFilter, now time.Time) (time.Time, time.Time) {
	today := domain.Date(now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch period.Mode {
	case domain.PeriodLastMonth:
		start := firstOfMonth.AddDate(0, -1, 0)
		return start, firstOfMonth.AddDate(0, 0, -1)
	case domain.PeriodThisYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today
	case domain.PeriodCustom:
		if period.Start != nil && period.End != nil {
			return domain.Date(*period.Start), domain.Date(*period.End)
		}
	}
	return firstOfMonth, today
}

// InWindow reports whether date falls within [start, end] by calendar date.
func InWindow(date, start, end time.Time) bool {
	d := domain.Date(date)
	return !d.Before(start) && !d.After(end)
}
