package session

import (
	"context"
	"errors"

	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
	"github.com/tartampluch/go-gymtrack/internal/remote"
)

// SquadView is everything the squad tab renders for one squad and one week.
type SquadView struct {
	SquadID string
	Members []engine.Member
	Visits  []engine.Visit
	Week    engine.RosterWeek

	// Empty is set when the squad does not exist or has no member.
	Empty bool
}

// AttendeesOn lists the members who visited on d, in roster order.
func (v SquadView) AttendeesOn(d engine.Date) []engine.Member {
	return engine.AttendeesOn(v.Members, v.Visits, d)
}

// begin makes squadID the current target and returns the generation stamp
// of the fetch about to start.
func (s *Session) begin(squadID string) uint64 {
	s.squadMu.Lock()
	defer s.squadMu.Unlock()
	s.squadGen++
	s.squadTarget = squadID
	return s.squadGen
}

func (s *Session) current(squadID string, gen uint64) bool {
	s.squadMu.Lock()
	defer s.squadMu.Unlock()
	return s.squadGen == gen && s.squadTarget == squadID
}

// staleOr returns ErrStale when squadID is no longer the current target,
// err otherwise. Failures of abandoned fetches are dropped with them.
func (s *Session) staleOr(squadID string, gen uint64, err error) error {
	if s.current(squadID, gen) {
		return err
	}
	s.log().Debug(config.MsgStaleDiscarded,
		config.LogKeySquad, squadID,
		config.LogKeyError, err)
	return ErrStale
}

// SquadTarget returns the squad most recently selected.
func (s *Session) SquadTarget() string {
	s.squadMu.Lock()
	defer s.squadMu.Unlock()
	return s.squadTarget
}

// SelectSquad fetches the roster and the week of visits around ref for
// squadID. When another squad was selected meanwhile the result is dropped
// and ErrStale is returned. A missing squad renders as an empty view.
func (s *Session) SelectSquad(ctx context.Context, squadID string, ref engine.Date) (SquadView, error) {
	gen := s.begin(squadID)
	ws := s.WeekStart()
	view := SquadView{SquadID: squadID}

	members, err := s.facade.FetchRoster(ctx, squadID)
	if err != nil && !errors.Is(err, remote.ErrNotFound) {
		return SquadView{}, s.staleOr(squadID, gen, err)
	}

	var visits []engine.Visit
	if len(members) > 0 {
		week := engine.WeekOf(ref, ws)
		visits, err = s.facade.FetchGroupVisits(ctx, squadID, week.Start, week.End)
		if err != nil && !errors.Is(err, remote.ErrNotFound) {
			return SquadView{}, s.staleOr(squadID, gen, err)
		}
	}

	if err := s.staleOr(squadID, gen, nil); err != nil {
		return SquadView{}, err
	}

	view.Members = members
	view.Visits = visits
	view.Week = engine.CrossReference(members, visits, ref, ws)
	view.Empty = len(members) == 0

	s.log().Debug(config.MsgSquadLoaded,
		config.LogKeySquad, squadID,
		config.LogKeyMembers, len(members),
		config.LogKeyVisits, len(visits))
	return view, nil
}

// Squads lists the squads of the member. A facade without a squad directory
// or an unknown member yields no squad.
func (s *Session) Squads(ctx context.Context) ([]engine.Squad, error) {
	dir, ok := s.facade.(remote.SquadDirectory)
	if !ok {
		return nil, nil
	}
	squads, err := dir.FetchSquads(ctx, s.memberID)
	if errors.Is(err, remote.ErrNotFound) {
		return nil, nil
	}
	return squads, err
}

// CreateSquad creates a squad owned by the member.
func (s *Session) CreateSquad(ctx context.Context, name string) (engine.Squad, error) {
	mgr, ok := s.facade.(remote.SquadManager)
	if !ok {
		return engine.Squad{}, errors.New(config.ErrNoSquadSupport)
	}
	return mgr.CreateSquad(ctx, name)
}

// JoinSquad adds the member to groupID.
func (s *Session) JoinSquad(ctx context.Context, groupID string) error {
	mgr, ok := s.facade.(remote.SquadManager)
	if !ok {
		return errors.New(config.ErrNoSquadSupport)
	}
	return mgr.JoinSquad(ctx, groupID, s.memberID)
}
