package engine

import (
	"sort"
	"time"

	"github.com/tartampluch/go-gymtrack/internal/config"
)

// MemberWeek is one roster row: the member's visits inside the week and the
// matching seven-day confirmation row (index 0 is the first day of the week).
type MemberWeek struct {
	Member Member
	Visits []Date
	Row    [config.DaysPerWeek]bool
}

// Count returns the number of visits in the week.
func (m MemberWeek) Count() int {
	return len(m.Visits)
}

// RosterWeek is the attendance matrix of a squad for one week.
type RosterWeek struct {
	Week    Window
	Days    [config.DaysPerWeek]Date
	Members []MemberWeek

	// ChampionIndex points into Members, or is -1 when nobody visited.
	ChampionIndex int
}

// Champion returns the member with the most visits of the week.
func (r RosterWeek) Champion() (MemberWeek, bool) {
	if r.ChampionIndex < 0 || r.ChampionIndex >= len(r.Members) {
		return MemberWeek{}, false
	}
	return r.Members[r.ChampionIndex], true
}

// CrossReference builds the attendance matrix of members for the week
// containing ref. Visits of unknown members are ignored and repeated
// (member, day) pairs count once. Member order is preserved.
func CrossReference(members []Member, visits []Visit, ref Date, weekStart time.Weekday) RosterWeek {
	week := WeekOf(ref, weekStart)
	out := RosterWeek{
		Week:          week,
		Members:       make([]MemberWeek, len(members)),
		ChampionIndex: -1,
	}
	for i := range out.Days {
		out.Days[i] = week.Start.AddDays(i)
	}

	index := indexMembers(members)
	for i, m := range members {
		out.Members[i].Member = m
	}

	seen := make(map[visitKey]bool)
	for _, v := range visits {
		pos, ok := index[v.MemberID]
		if !ok || !week.Contains(v.Date) {
			continue
		}
		key := visitKey{member: v.MemberID, date: v.Date}
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Members[pos].Row[week.Start.DaysUntil(v.Date)] = true
	}

	best := 0
	for i := range out.Members {
		row := &out.Members[i]
		for day, visited := range row.Row {
			if visited {
				row.Visits = append(row.Visits, out.Days[day])
			}
		}
		// Strictly greater keeps the earliest member on ties.
		if row.Count() > best {
			best = row.Count()
			out.ChampionIndex = i
		}
	}
	return out
}

// Standing is a member's visit count over a window.
type Standing struct {
	Member Member
	Visits int
}

// Tally counts distinct visit days per member over w, in member order.
func Tally(members []Member, visits []Visit, w Window) []Standing {
	out := make([]Standing, len(members))
	for i, m := range members {
		out[i].Member = m
	}

	index := indexMembers(members)
	seen := make(map[visitKey]bool)
	for _, v := range visits {
		pos, ok := index[v.MemberID]
		if !ok || !w.Contains(v.Date) {
			continue
		}
		key := visitKey{member: v.MemberID, date: v.Date}
		if seen[key] {
			continue
		}
		seen[key] = true
		out[pos].Visits++
	}
	return out
}

// Leaderboard returns the standings over w, most visits first.
// Equal counts keep the input member order.
func Leaderboard(members []Member, visits []Visit, w Window) []Standing {
	out := Tally(members, visits, w)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Visits > out[j].Visits
	})
	return out
}

// Champion returns the first standing with the highest count.
// Nobody is champion when every count is zero.
func Champion(standings []Standing) (Standing, bool) {
	best := -1
	for i, s := range standings {
		if s.Visits > 0 && (best < 0 || s.Visits > standings[best].Visits) {
			best = i
		}
	}
	if best < 0 {
		return Standing{}, false
	}
	return standings[best], true
}

// AttendeesOn returns the members who visited on d, in member order.
func AttendeesOn(members []Member, visits []Visit, d Date) []Member {
	present := make(map[string]bool)
	for _, v := range visits {
		if v.Date == d {
			present[v.MemberID] = true
		}
	}
	var out []Member
	for _, m := range members {
		if present[m.ID] {
			out = append(out, m)
			// Duplicate roster entries are listed once.
			delete(present, m.ID)
		}
	}
	return out
}

// indexMembers maps member ids to their first position.
func indexMembers(members []Member) map[string]int {
	index := make(map[string]int, len(members))
	for i, m := range members {
		if _, dup := index[m.ID]; !dup {
			index[m.ID] = i
		}
	}
	return index
}
