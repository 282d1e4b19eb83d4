package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
)

func TestVisitStore_AddHasRemove(t *testing.T) {
	s := engine.NewVisitStore("ryan")
	today := d(2025, 10, 15)

	assert.False(t, s.Has(today))

	assert.True(t, s.Add(today))
	assert.True(t, s.Has(today))

	assert.False(t, s.Add(today), "second add is a no-op")
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Remove(today))
	assert.False(t, s.Has(today))
	assert.False(t, s.Remove(today), "removing a missing visit is a no-op")
}

func TestVisitStore_Toggle(t *testing.T) {
	s := engine.NewVisitStore("m1")
	day := d(2025, 1, 1)

	assert.True(t, s.Toggle(day))
	assert.True(t, s.Has(day))
	assert.False(t, s.Toggle(day))
	assert.False(t, s.Has(day))
}

func TestVisitStore_ListIsInclusiveAndOrdered(t *testing.T) {
	s := engine.NewVisitStore("m1")
	for _, day := range []engine.Date{d(2025, 3, 10), d(2025, 3, 1), d(2025, 2, 28), d(2025, 3, 31), d(2025, 4, 1)} {
		s.Add(day)
	}

	got := engine.VisitDates(s.List(d(2025, 3, 1), d(2025, 3, 31)))
	assert.Equal(t, []engine.Date{d(2025, 3, 1), d(2025, 3, 10), d(2025, 3, 31)}, got)

	assert.Empty(t, s.List(d(2025, 4, 2), d(2025, 3, 1)), "inverted range is empty")
	assert.Equal(t, d(2025, 2, 28), s.All()[0].Date)
}

func TestVisitStore_ReplaceFiltersForeignAndDuplicates(t *testing.T) {
	s := engine.NewVisitStore("me")
	s.Add(d(2024, 1, 1))

	at := time.Date(2025, 5, 2, 18, 30, 0, 0, time.UTC)
	s.Replace([]engine.Visit{
		{MemberID: "me", Date: d(2025, 5, 2), At: at},
		{MemberID: "me", Date: d(2025, 5, 2)},
		{MemberID: "someone-else", Date: d(2025, 5, 3)},
		{Date: d(2025, 5, 4)},
	})

	assert.Equal(t, []engine.Date{d(2025, 5, 2), d(2025, 5, 4)}, s.Dates())
	v, ok := s.Get(d(2025, 5, 2))
	assert.True(t, ok)
	assert.Equal(t, at, v.At, "first occurrence keeps its timestamp")
	assert.Equal(t, "me", v.MemberID)
}

func TestVisitStore_CloneIsIndependent(t *testing.T) {
	s := engine.NewVisitStore("me")
	s.Add(d(2025, 1, 1))

	c := s.Clone()
	c.Add(d(2025, 1, 2))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, c.Len())
}

// Scenario: empty store, confirm today, weekly count becomes 1.
func TestVisitStore_TodayScenario(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)}
	today := engine.Today(clock)
	s := engine.NewVisitStore("me")

	assert.False(t, s.Has(today))
	s.Add(today)
	assert.True(t, s.Has(today))
	assert.Equal(t, 1, engine.VisitsThisWeek(s.Dates(), today, config.DefaultWeekStart))
}
