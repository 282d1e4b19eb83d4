package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
)

func TestLastNWeeks_BucketCountAndSpacing(t *testing.T) {
	today := d(2025, 1, 2) // window crosses a year boundary

	for _, n := range []int{1, 4, 26, 53} {
		w := engine.LastNWeeks(today, n, time.Sunday)
		buckets := engine.AggregateWeekly(nil, w, time.Sunday)

		require.Len(t, buckets, n)
		for i := 1; i < len(buckets); i++ {
			assert.Equal(t, 7, buckets[i-1].WeekStart.DaysUntil(buckets[i].WeekStart))
		}
		assert.Equal(t, engine.StartOfWeek(today, time.Sunday), buckets[n-1].WeekStart)
	}

	assert.True(t, engine.LastNWeeks(today, 0, time.Sunday).IsEmpty())
	assert.Nil(t, engine.AggregateWeekly(nil, engine.LastNWeeks(today, 0, time.Sunday), time.Sunday))
}

// Scenario: 26-week chart with three visits in one week.
func TestAggregateWeekly_ChartScenario(t *testing.T) {
	today := d(2025, 10, 15)
	w := engine.LastNWeeks(today, config.DefaultChartWeeks, config.DefaultWeekStart)

	weekW := d(2025, 8, 10) // a Sunday inside the window
	dates := []engine.Date{weekW.AddDays(1), weekW.AddDays(3), weekW.AddDays(6)}

	buckets := engine.AggregateWeekly(dates, w, config.DefaultWeekStart)

	require.Len(t, buckets, 26)
	for _, b := range buckets {
		if b.WeekStart == weekW {
			assert.Equal(t, 3, b.Count)
		} else {
			assert.Zero(t, b.Count, b.WeekStart.String())
		}
	}
}

func TestAggregateWeekly_SumMatchesList(t *testing.T) {
	store := engine.NewVisitStore("me")
	for day := d(2024, 11, 1); day.Before(d(2025, 3, 1)); day = day.AddDays(3) {
		store.Add(day)
	}

	w := engine.LastNWeeks(d(2025, 2, 12), 10, time.Monday)
	buckets := engine.AggregateWeekly(store.Dates(), w, time.Monday)

	assert.Equal(t, len(store.List(w.Start, w.End)), engine.TotalCount(buckets))
}

func TestAggregateWeekly_UnalignedWindowCountsWholeWeeks(t *testing.T) {
	// Thursday to the next Tuesday touches two Sunday-start weeks.
	w := engine.Window{Start: d(2025, 10, 9), End: d(2025, 10, 14)}
	dates := []engine.Date{d(2025, 10, 5), d(2025, 10, 9), d(2025, 10, 18), d(2025, 10, 19)}

	buckets := engine.AggregateWeekly(dates, w, time.Sunday)

	require.Len(t, buckets, 2)
	assert.Equal(t, engine.WeeklyBucket{WeekStart: d(2025, 10, 5), Count: 2}, buckets[0])
	assert.Equal(t, engine.WeeklyBucket{WeekStart: d(2025, 10, 12), Count: 1}, buckets[1])
}

func TestSinceMonths(t *testing.T) {
	w := engine.SinceMonths(d(2025, 10, 15), 6, time.Sunday)

	assert.Equal(t, d(2025, 4, 13), w.Start)
	assert.Equal(t, d(2025, 10, 18), w.End)
	assert.Equal(t, time.Sunday, w.Start.Weekday())
	assert.Len(t, engine.AggregateWeekly(nil, w, time.Sunday), 27)
}

func TestChartSpan_Window(t *testing.T) {
	today := d(2025, 10, 15)

	assert.Equal(t, engine.SinceMonths(today, 6, time.Sunday), engine.ChartSpan{Months: 6}.Window(today, time.Sunday))
	assert.Equal(t, engine.LastNWeeks(today, 26, time.Sunday), engine.ChartSpan{Weeks: 26}.Window(today, time.Sunday))
	assert.Equal(t, engine.SinceMonths(today, 1, time.Sunday), engine.ChartSpan{Weeks: 26, Months: 1}.Window(today, time.Sunday),
		"months win when both are set")
	assert.True(t, engine.ChartSpan{}.Window(today, time.Sunday).IsEmpty())
}

func TestVisitsThisWeek(t *testing.T) {
	today := d(2025, 10, 15)
	dates := []engine.Date{d(2025, 10, 11), d(2025, 10, 12), d(2025, 10, 18), d(2025, 10, 19)}

	assert.Equal(t, 2, engine.VisitsThisWeek(dates, today, time.Sunday))
	assert.Equal(t, 2, engine.VisitsThisWeek(dates, today, time.Monday))
	assert.Zero(t, engine.VisitsThisWeek(nil, today, time.Sunday))
}

func TestWindow(t *testing.T) {
	w := engine.WeekOf(d(2025, 10, 15), time.Sunday)

	assert.Equal(t, 7, w.Days())
	assert.True(t, w.Contains(d(2025, 10, 12)))
	assert.True(t, w.Contains(d(2025, 10, 18)))
	assert.False(t, w.Contains(d(2025, 10, 19)))
	assert.Zero(t, engine.Window{}.Days())
	assert.Equal(t, 2, engine.MaxCount([]engine.WeeklyBucket{{Count: 1}, {Count: 2}}))
}
