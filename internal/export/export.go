// Package export renders a member's visits as an iCalendar feed and a JSON
// weekly summary.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
)

// Exporter builds feed payloads.
type Exporter struct {
	Clock engine.Clock

	// FormatSummary lets the UI inject a localized event title.
	FormatSummary func(d engine.Date) string

	// CalendarName overrides X-WR-CALNAME when set.
	CalendarName string
}

// New returns an Exporter on the wall clock.
func New() *Exporter {
	return &Exporter{Clock: engine.RealClock{}}
}

func (e *Exporter) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// VisitsICS renders one all-day VEVENT per visit. Event UIDs derive from the
// member and the day, so calendar clients update events in place across
// refreshes. An empty visit list yields a valid empty calendar.
func (e *Exporter) VisitsICS(memberID string, visits []engine.Visit) ([]byte, error) {
	cal := ical.NewCalendar()

	calName := config.ICalCalName
	if e.CalendarName != "" {
		calName = e.CalendarName
	}

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, calName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(e.now().UTC())

	seen := make(map[engine.Date]bool, len(visits))
	for _, v := range visits {
		if v.Date.IsZero() || seen[v.Date] {
			continue
		}
		seen[v.Date] = true

		event := e.visitEvent(memberID, v.Date)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		var buf bytes.Buffer
		buf.WriteString(config.StubVCalendar)
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyMember, memberID,
		config.LogKeyVisits, len(cal.Children),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func (e *Exporter) visitEvent(memberID string, d engine.Date) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, EventUID(memberID, d))

	summary := config.FallbackSummary
	if e.FormatSummary != nil {
		summary = e.FormatSummary(d)
	}
	event.Props.SetText(config.PropSummary, summary)

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(d.Time(time.UTC))
	event.Props.Set(start)

	end := ical.NewProp(config.PropDTEnd)
	end.SetDate(d.AddDays(1).Time(time.UTC))
	event.Props.Set(end)

	event.Props.SetText(config.PropTransp, config.ICalTransp)
	return event
}

// EventUID is the stable iCalendar UID of memberID's visit on d.
func EventUID(memberID string, d engine.Date) string {
	input := fmt.Sprintf(config.FormatHashInput, memberID, d.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}

// Summary is the JSON document served next to the calendar.
type Summary struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	MemberID    string                `json:"memberId"`
	WeekStart   string                `json:"weekStart"`
	ThisWeek    int                   `json:"thisWeek"`
	Total       int                   `json:"total"`
	Weeks       []engine.WeeklyBucket `json:"weeks"`
}

// BuildSummary aggregates dates over span, ending with the current week.
func (e *Exporter) BuildSummary(memberID string, dates []engine.Date, span engine.ChartSpan, weekStart time.Weekday) Summary {
	now := e.now()
	today := engine.DateOf(now)
	buckets := engine.AggregateWeekly(dates, span.Window(today, weekStart), weekStart)

	return Summary{
		GeneratedAt: now.UTC(),
		MemberID:    memberID,
		WeekStart:   weekStart.String(),
		ThisWeek:    engine.VisitsThisWeek(dates, today, weekStart),
		Total:       engine.TotalCount(buckets),
		Weeks:       buckets,
	}
}

// SummaryJSON encodes s.
func SummaryJSON(s Summary) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSummaryEncode, err)
	}
	return b, nil
}
