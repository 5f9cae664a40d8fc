package aggregation

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, time.March, 20, 15, 4, 5, 0, time.UTC)
	customStart := day(2023, time.December, 1)
	customEnd := day(2024, time.January, 31)

	tests := []struct {
		name      string
		period    domain.PeriodFilter
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "this month", period: domain.PeriodFilter{Mode: domain.PeriodThisMonth}, wantStart: day(2024, 3, 1), wantEnd: day(2024, 3, 20)},
		{name: "last month in leap year", period: domain.PeriodFilter{Mode: domain.PeriodLastMonth}, wantStart: day(2024, 2, 1), wantEnd: day(2024, 2, 29)},
		{name: "this year", period: domain.PeriodFilter{Mode: domain.PeriodThisYear}, wantStart: day(2024, 1, 1), wantEnd: day(2024, 3, 20)},
		{name: "custom", period: domain.PeriodFilter{Mode: domain.PeriodCustom, Start: &customStart, End: &customEnd}, wantStart: customStart, wantEnd: customEnd},
		{name: "custom without end falls back", period: domain.PeriodFilter{Mode: domain.PeriodCustom, Start: &customStart}, wantStart: day(2024, 3, 1), wantEnd: day(2024, 3, 20)},
		{name: "custom without start falls back", period: domain.PeriodFilter{Mode: domain.PeriodCustom, End: &customEnd}, wantStart: day(2024, 3, 1), wantEnd: day(2024, 3, 20)},
		{name: "unknown mode behaves as this month", period: domain.PeriodFilter{}, wantStart: day(2024, 3, 1), wantEnd: day(2024, 3, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.period, now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestWindow_LastMonthAcrossYearBoundary(t *testing.T) {
	now := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	start, end := Window(domain.PeriodFilter{Mode: domain.PeriodLastMonth}, now)
	assert.Equal(t, day(2023, time.December, 1), start)
	assert.Equal(t, day(2023, time.December, 31), end)
}

func TestInWindow_IsInclusive(t *testing.T) {
	start, end := day(2024, 2, 1), day(2024, 2, 29)

	assert.True(t, InWindow(day(2024, 2, 1), start, end))
	assert.True(t, InWindow(day(2024, 2, 29), start, end))
	assert.True(t, InWindow(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC), start, end))
	assert.False(t, InWindow(day(2024, 1, 31), start, end))
	assert.False(t, InWindow(day(2024, 3, 1), start, end))
}
