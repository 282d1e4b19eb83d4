package engine

import "time"

// CalendarCell is one day slot of a rendered month or week.
// Cells are derived on every render and never stored.
type CalendarCell struct {
	Date         Date
	InFocusMonth bool
	IsToday      bool
	IsSelected   bool
	HasVisit     bool
}

// DateSet answers visit membership for grid rendering. *VisitStore satisfies it.
type DateSet interface {
	Has(Date) bool
}

// GridOptions controls how cells are flagged.
type GridOptions struct {
	WeekStart time.Weekday
	Today     Date
	Selected  Date    // zero value: nothing selected
	Visits    DateSet // nil: no visits
}

// MonthRange returns the week-aligned window covering ref's month.
func MonthRange(ref Date, weekStart time.Weekday) Window {
	return Window{
		Start: StartOfWeek(FirstOfMonth(ref), weekStart),
		End:   EndOfWeek(LastOfMonth(ref), weekStart),
	}
}

// BuildMonthGrid returns every day from the start of the week holding the
// first of ref's month to the end of the week holding its last day.
// The result is always a whole number of weeks and never padded further.
func BuildMonthGrid(ref Date, opts GridOptions) []CalendarCell {
	return buildCells(MonthRange(ref, opts.WeekStart), ref, opts)
}

// BuildWeek returns the seven cells of the week containing ref.
func BuildWeek(ref Date, opts GridOptions) []CalendarCell {
	return buildCells(WeekOf(ref, opts.WeekStart), ref, opts)
}

func buildCells(w Window, focus Date, opts GridOptions) []CalendarCell {
	cells := make([]CalendarCell, 0, w.Days())
	for d := w.Start; !d.After(w.End); d = d.AddDays(1) {
		cell := CalendarCell{
			Date:         d,
			InFocusMonth: d.SameMonth(focus),
			IsToday:      !opts.Today.IsZero() && d == opts.Today,
			IsSelected:   !opts.Selected.IsZero() && d == opts.Selected,
		}
		if opts.Visits != nil {
			cell.HasVisit = opts.Visits.Has(d)
		}
		cells = append(cells, cell)
	}
	return cells
}

// WeekdayOrder lists the seven weekdays starting at weekStart, for headers.
func WeekdayOrder(weekStart time.Weekday) [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}
