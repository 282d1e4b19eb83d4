package engine

import "sort"

// VisitStore is the set of visits of a single member, keyed by calendar day.
// It holds at most one Visit per day. It is not safe for concurrent use;
// the owner serializes access.
type VisitStore struct {
	memberID string
	visits   map[Date]Visit
}

// NewVisitStore returns an empty store for memberID.
func NewVisitStore(memberID string) *VisitStore {
	return &VisitStore{
		memberID: memberID,
		visits:   make(map[Date]Visit),
	}
}

// MemberID returns the owner of the store.
func (s *VisitStore) MemberID() string {
	return s.memberID
}

// Has reports whether a visit exists on d.
func (s *VisitStore) Has(d Date) bool {
	_, ok := s.visits[d]
	return ok
}

// Get returns the visit recorded on d, if any.
func (s *VisitStore) Get(d Date) (Visit, bool) {
	v, ok := s.visits[d]
	return v, ok
}

// Add records a visit on d. It returns false when one already existed.
func (s *VisitStore) Add(d Date) bool {
	return s.AddVisit(Visit{MemberID: s.memberID, Date: d})
}

// AddVisit records v, keeping its display timestamp.
// Visits of other members and zero dates are ignored.
func (s *VisitStore) AddVisit(v Visit) bool {
	if v.Date.IsZero() || (v.MemberID != "" && v.MemberID != s.memberID) {
		return false
	}
	if s.Has(v.Date) {
		return false
	}
	v.MemberID = s.memberID
	s.visits[v.Date] = v
	return true
}

// Remove deletes the visit on d. It returns false when there was none.
func (s *VisitStore) Remove(d Date) bool {
	if !s.Has(d) {
		return false
	}
	delete(s.visits, d)
	return true
}

// Toggle adds a visit on d if absent, removes it otherwise, and returns
// whether a visit exists afterwards.
func (s *VisitStore) Toggle(d Date) bool {
	if s.Remove(d) {
		return false
	}
	s.Add(d)
	return true
}

// List returns the visits in [start, end], oldest first.
func (s *VisitStore) List(start, end Date) []Visit {
	if start.After(end) {
		return nil
	}
	var out []Visit
	for d, v := range s.visits {
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, v)
	}
	sortVisits(out)
	return out
}

// All returns every visit, oldest first.
func (s *VisitStore) All() []Visit {
	out := make([]Visit, 0, len(s.visits))
	for _, v := range s.visits {
		out = append(out, v)
	}
	sortVisits(out)
	return out
}

// Dates returns every visit date, oldest first.
func (s *VisitStore) Dates() []Date {
	return VisitDates(s.All())
}

// Len returns the number of recorded visits.
func (s *VisitStore) Len() int {
	return len(s.visits)
}

// Replace swaps the whole content for visits, typically after a remote fetch.
// Duplicate days collapse into one visit.
func (s *VisitStore) Replace(visits []Visit) {
	s.visits = make(map[Date]Visit, len(visits))
	for _, v := range visits {
		s.AddVisit(v)
	}
}

// Clone returns an independent copy.
func (s *VisitStore) Clone() *VisitStore {
	c := NewVisitStore(s.memberID)
	for d, v := range s.visits {
		c.visits[d] = v
	}
	return c
}

func sortVisits(visits []Visit) {
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].Date.Before(visits[j].Date)
	})
}
