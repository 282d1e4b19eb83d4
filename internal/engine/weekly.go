package engine

import (
	"time"

	"github.com/tartampluch/go-gymtrack/internal/config"
)

// Window is an inclusive range of calendar days.
type Window struct {
	Start Date
	End   Date
}

// IsEmpty reports whether the window holds no day.
func (w Window) IsEmpty() bool {
	return w.Start.IsZero() || w.End.IsZero() || w.Start.After(w.End)
}

// Contains reports whether d falls in the window.
func (w Window) Contains(d Date) bool {
	return !w.IsEmpty() && !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of days in the window.
func (w Window) Days() int {
	if w.IsEmpty() {
		return 0
	}
	return w.Start.DaysUntil(w.End) + 1
}

// WeekOf returns the week containing d.
func WeekOf(d Date, weekStart time.Weekday) Window {
	start := StartOfWeek(d, weekStart)
	return Window{Start: start, End: start.AddDays(config.DaysPerWeek - 1)}
}

// LastNWeeks returns the n whole weeks ending with the week containing today.
func LastNWeeks(today Date, n int, weekStart time.Weekday) Window {
	if n <= 0 {
		return Window{}
	}
	current := WeekOf(today, weekStart)
	return Window{
		Start: current.Start.AddDays(-config.DaysPerWeek * (n - 1)),
		End:   current.End,
	}
}

// SinceMonths returns the week-aligned window from months before today up to
// the end of the current week.
func SinceMonths(today Date, months int, weekStart time.Weekday) Window {
	return Window{
		Start: StartOfWeek(today.AddMonths(-months), weekStart),
		End:   EndOfWeek(today, weekStart),
	}
}

// ChartSpan is the length of the weekly history chart: Months when set,
// Weeks otherwise.
type ChartSpan struct {
	Weeks  int
	Months int
}

// Window returns the week-aligned range covered by the chart.
func (c ChartSpan) Window(today Date, weekStart time.Weekday) Window {
	if c.Months > 0 {
		return SinceMonths(today, c.Months, weekStart)
	}
	return LastNWeeks(today, c.Weeks, weekStart)
}

// WeeklyBucket is the visit count of the week starting at WeekStart.
type WeeklyBucket struct {
	WeekStart Date `json:"weekStart"`
	Count     int  `json:"count"`
}

// AggregateWeekly buckets dates by week over w.
// Iteration starts at the week holding w.Start and advances exactly seven
// days until it passes w.End. Every week gets a bucket, empty ones included.
// Each bucket counts the dates of its whole week, so a window that is not
// week-aligned also counts the days that alignment adds at either end.
func AggregateWeekly(dates []Date, w Window, weekStart time.Weekday) []WeeklyBucket {
	if w.IsEmpty() {
		return nil
	}

	first := StartOfWeek(w.Start, weekStart)
	weeks := first.DaysUntil(w.End)/config.DaysPerWeek + 1
	buckets := make([]WeeklyBucket, weeks)
	for i := range buckets {
		buckets[i].WeekStart = first.AddDays(config.DaysPerWeek * i)
	}

	last := buckets[weeks-1].WeekStart.AddDays(config.DaysPerWeek - 1)
	for _, d := range dates {
		if d.Before(first) || d.After(last) {
			continue
		}
		buckets[first.DaysUntil(d)/config.DaysPerWeek].Count++
	}
	return buckets
}

// VisitsThisWeek counts the dates falling in the week containing today.
func VisitsThisWeek(dates []Date, today Date, weekStart time.Weekday) int {
	week := WeekOf(today, weekStart)
	n := 0
	for _, d := range dates {
		if week.Contains(d) {
			n++
		}
	}
	return n
}

// TotalCount sums the bucket counts.
func TotalCount(buckets []WeeklyBucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}

// MaxCount returns the largest bucket count, 0 for no buckets.
func MaxCount(buckets []WeeklyBucket) int {
	m := 0
	for _, b := range buckets {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}
