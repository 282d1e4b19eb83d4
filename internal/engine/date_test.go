package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-gymtrack/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func d(year int, month time.Month, day int) engine.Date {
	return engine.NewDate(year, month, day)
}

func TestDateOf_UsesLocalWallClock(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2025-06-14 20:00 UTC is already June 15th in Tokyo.
	instant := time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC).In(tokyo)

	assert.Equal(t, d(2025, 6, 15), engine.DateOf(instant))
	assert.Equal(t, d(2025, 6, 14), engine.DateOf(instant.UTC()))
}

func TestToday_FromClock(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, d(2025, 3, 9), engine.Today(clock))
}

func TestDate_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  engine.Date
		want engine.Date
	}{
		{"AddDays across year", d(2024, 12, 30).AddDays(3), d(2025, 1, 2)},
		{"AddDays backwards across leap day", d(2024, 3, 1).AddDays(-1), d(2024, 2, 29)},
		{"AddMonths clamps", d(2025, 3, 31).AddMonths(-1), d(2025, 2, 28)},
		{"AddMonths clamps leap", d(2024, 3, 31).AddMonths(-1), d(2024, 2, 29)},
		{"AddMonths across year", d(2025, 2, 15).AddMonths(-6), d(2024, 8, 15)},
		{"FirstOfMonth", engine.FirstOfMonth(d(2025, 7, 19)), d(2025, 7, 1)},
		{"LastOfMonth February", engine.LastOfMonth(d(2024, 2, 3)), d(2024, 2, 29)},
		{"ShiftMonth forward", engine.ShiftMonth(d(2025, 12, 31), 1), d(2026, 1, 1)},
		{"NewDate normalizes", engine.NewDate(2025, 1, 32), d(2025, 2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestDate_CompareAndDaysUntil(t *testing.T) {
	a, b := d(2025, 1, 31), d(2025, 2, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, a.DaysUntil(b))
	assert.Equal(t, -1, b.DaysUntil(a))
	assert.Equal(t, 365, d(2025, 1, 1).DaysUntil(d(2026, 1, 1)))
}

func TestStartAndEndOfWeek(t *testing.T) {
	wed := d(2025, 10, 15) // Wednesday

	tests := []struct {
		name      string
		weekStart time.Weekday
		start     engine.Date
		end       engine.Date
	}{
		{"Sunday start", time.Sunday, d(2025, 10, 12), d(2025, 10, 18)},
		{"Monday start", time.Monday, d(2025, 10, 13), d(2025, 10, 19)},
		{"Saturday start", time.Saturday, d(2025, 10, 11), d(2025, 10, 17)},
		{"Wednesday start is itself", time.Wednesday, wed, d(2025, 10, 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, engine.StartOfWeek(wed, tt.weekStart))
			assert.Equal(t, tt.end, engine.EndOfWeek(wed, tt.weekStart))
			assert.Equal(t, tt.weekStart, engine.StartOfWeek(wed, tt.weekStart).Weekday())
		})
	}
}

func TestDate_TextRoundTrip(t *testing.T) {
	type payload struct {
		Date engine.Date `json:"date"`
	}

	raw, err := json.Marshal(payload{Date: d(2025, 4, 7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-04-07"}`, string(raw))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-04-07T22:10:00+02:00"}`), &p))
	assert.Equal(t, d(2025, 4, 7), p.Date, "timestamps keep their own calendar day")

	assert.Error(t, json.Unmarshal([]byte(`{"date":"07/04/2025"}`), &p))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := engine.ParseDate("2025-13-01")
	assert.Error(t, err)

	got, err := engine.ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", got.String())
	assert.Empty(t, engine.Date{}.String())
	assert.True(t, engine.Date{}.IsZero())
}
