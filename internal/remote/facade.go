package remote

import (
	"context"

	"github.com/tartampluch/go-gymtrack/internal/engine"
)

// Facade is the remote side of the visit store.
// Implementations return *Error values so callers can branch on Kind.
type Facade interface {
	FetchVisits(ctx context.Context, memberID string) ([]engine.Visit, error)
	AddVisit(ctx context.Context, memberID string, date engine.Date) error
	RemoveVisit(ctx context.Context, memberID string, date engine.Date) error
	FetchRoster(ctx context.Context, groupID string) ([]engine.Member, error)
	FetchGroupVisits(ctx context.Context, groupID string, start, end engine.Date) ([]engine.Visit, error)
}

// MemberVisitsFetcher reads the visits of several members in one call.
// Members the caller may not see are left out rather than failing the call.
type MemberVisitsFetcher interface {
	FetchMemberVisits(ctx context.Context, memberIDs []string, start, end engine.Date) ([]engine.Visit, error)
}

// SquadDirectory lists the squads a member belongs to.
type SquadDirectory interface {
	FetchSquads(ctx context.Context, memberID string) ([]engine.Squad, error)
}

// SquadManager creates and joins squads.
type SquadManager interface {
	CreateSquad(ctx context.Context, name string) (engine.Squad, error)
	JoinSquad(ctx context.Context, groupID, memberID string) error
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	SignUp(ctx context.Context, username, password string) (Credentials, error)
	SignIn(ctx context.Context, username, password string) (Credentials, error)
}

// Credentials identify a signed-in member.
type Credentials struct {
	MemberID string
	Username string
	Token    string
}
