package engine

import "time"

// Visit is one confirmed gym attendance of a member on a calendar day.
// Identity is (MemberID, Date); At is display-only and may be zero.
type Visit struct {
	MemberID string
	Date     Date
	At       time.Time
}

// Member is a roster entry.
type Member struct {
	ID   string
	Name string
}

// Squad is a named roster a member belongs to.
type Squad struct {
	ID   string
	Name string
}

// visitKey identifies a visit across members.
type visitKey struct {
	member string
	date   Date
}

// VisitDates extracts the dates of visits, preserving order.
func VisitDates(visits []Visit) []Date {
	out := make([]Date, 0, len(visits))
	for _, v := range visits {
		out = append(out, v.Date)
	}
	return out
}
