package backend

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
	"golang.org/x/crypto/bcrypt"
)

// Service holds the business rules of the API.
type Service struct {
	store  *Store
	clock  engine.Clock
	secret []byte
	ttl    time.Duration
}

// NewService builds a service over an initialized database.
func NewService(db *sql.DB, secret []byte, ttl time.Duration) *Service {
	return &Service{
		store:  NewStore(db),
		clock:  engine.RealClock{},
		secret: secret,
		ttl:    ttl,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(c engine.Clock) *Service {
	s.clock = c
	return s
}

func (s *Service) log() *slog.Logger {
	return slog.With(slog.String(config.LogKeyComponent, config.CompBackend))
}

func validName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return name, n > 0 && n <= config.MaxNameLength
}

// parseVisitDate accepts YYYY-MM-DD dates that have started somewhere on Earth.
func (s *Service) parseVisitDate(raw string) (engine.Date, error) {
	d, err := engine.ParseDate(raw)
	if err != nil {
		return engine.Date{}, ErrInvalid(config.ErrInvalidDate)
	}
	latest := engine.DateOf(s.clock.Now().UTC().Add(config.MaxZoneOffset))
	if d.After(latest) {
		return engine.Date{}, ErrInvalid(config.ErrFutureVisit)
	}
	return d, nil
}

// ---------- accounts ----------

func (s *Service) SignUp(ctx context.Context, req CredentialsRequest) (AuthResponse, error) {
	username, ok := validName(req.Username)
	if !ok {
		return AuthResponse{}, ErrInvalid(config.ErrNameInvalid)
	}
	if len(req.Password) < config.MinPasswordLength {
		return AuthResponse{}, ErrInvalid(config.ErrPasswordShort)
	}

	existing, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return AuthResponse{}, err
	}
	if existing != nil {
		return AuthResponse{}, ErrConflict(config.ErrUserExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	u := &User{
		ID:           ulid.Make().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return AuthResponse{}, err
	}
	return s.authResponse(u)
}

func (s *Service) SignIn(ctx context.Context, req CredentialsRequest) (AuthResponse, error) {
	u, err := s.store.UserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return AuthResponse{}, err
	}
	if u == nil {
		return AuthResponse{}, ErrUnauthenticated(config.ErrBadCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return AuthResponse{}, ErrUnauthenticated(config.ErrBadCredentials)
	}
	return s.authResponse(u)
}

func (s *Service) authResponse(u *User) (AuthResponse, error) {
	token, err := issueToken(s.secret, u.ID, u.Username, s.clock.Now(), s.ttl)
	if err != nil {
		return AuthResponse{}, err
	}
	s.log().Info(config.MsgSignedIn, config.LogKeyUser, u.Username, config.LogKeyMember, u.ID)
	return AuthResponse{UserID: u.ID, Username: u.Username, Token: token}, nil
}

func (s *Service) requireUser(ctx context.Context, id string) error {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound(config.ErrUserNotFound)
	}
	return nil
}

func (s *Service) requireSquad(ctx context.Context, id string) error {
	ok, err := s.store.SquadExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound(config.ErrGroupNotFound)
	}
	return nil
}

// ---------- visits ----------

func (s *Service) ListVisits(ctx context.Context, userID string) ([]Visit, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.VisitsOf(ctx, userID)
}

// AddVisit is idempotent: a second call for the same day returns the
// existing visit and created=false.
func (s *Service) AddVisit(ctx context.Context, userID, rawDate string) (Visit, bool, error) {
	d, err := s.parseVisitDate(rawDate)
	if err != nil {
		return Visit{}, false, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return Visit{}, false, err
	}

	v := Visit{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Date:      d.String(),
		Timestamp: s.clock.Now().UTC(),
	}
	created, err := s.store.InsertVisit(ctx, &v)
	if err != nil {
		return Visit{}, false, err
	}
	if created {
		return v, true, nil
	}

	existing, err := s.store.VisitOn(ctx, userID, v.Date)
	if err != nil {
		return Visit{}, false, err
	}
	if existing == nil {
		return v, false, nil
	}
	return *existing, false, nil
}

// RemoveVisit deletes the visit on rawDate. Removing a missing visit succeeds.
func (s *Service) RemoveVisit(ctx context.Context, userID, rawDate string) error {
	d, err := engine.ParseDate(rawDate)
	if err != nil {
		return ErrInvalid(config.ErrInvalidDate)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	_, err = s.store.DeleteVisit(ctx, userID, d.String())
	return err
}

// ---------- squads ----------

func (s *Service) UserSquads(ctx context.Context, userID string) ([]Squad, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.SquadsOf(ctx, userID)
}

func (s *Service) CreateSquad(ctx context.Context, ownerID, rawName string) (Squad, error) {
	name, ok := validName(rawName)
	if !ok {
		return Squad{}, ErrInvalid(config.ErrNameInvalid)
	}
	if err := s.requireUser(ctx, ownerID); err != nil {
		return Squad{}, err
	}

	sq := Squad{ID: ulid.Make().String(), Name: name}
	if err := s.store.CreateSquad(ctx, &sq, ownerID, s.clock.Now()); err != nil {
		return Squad{}, err
	}
	return sq, nil
}

func (s *Service) JoinSquad(ctx context.Context, squadID, userID string) error {
	if err := s.requireSquad(ctx, squadID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.store.AddMember(ctx, squadID, userID, s.clock.Now())
}

func (s *Service) Members(ctx context.Context, squadID string) ([]Member, error) {
	if err := s.requireSquad(ctx, squadID); err != nil {
		return nil, err
	}
	return s.store.Members(ctx, squadID)
}

func parseRange(rawStart, rawEnd string) (engine.Date, engine.Date, error) {
	start, err := engine.ParseDate(rawStart)
	if err != nil {
		return engine.Date{}, engine.Date{}, ErrInvalid(config.ErrInvalidDate)
	}
	end, err := engine.ParseDate(rawEnd)
	if err != nil {
		return engine.Date{}, engine.Date{}, ErrInvalid(config.ErrInvalidDate)
	}
	if start.After(end) {
		return engine.Date{}, engine.Date{}, ErrInvalid(config.ErrInvalidRange)
	}
	return start, end, nil
}

// SquadVisits returns the visits of squadID's members between start and end.
func (s *Service) SquadVisits(ctx context.Context, squadID, rawStart, rawEnd string) ([]Visit, error) {
	start, end, err := parseRange(rawStart, rawEnd)
	if err != nil {
		return nil, err
	}
	if err := s.requireSquad(ctx, squadID); err != nil {
		return nil, err
	}
	return s.store.SquadVisits(ctx, squadID, start.String(), end.String())
}

// MemberVisits returns the visits of memberIDs between start and end.
// Members the caller shares no squad with, and unknown ids, yield nothing.
func (s *Service) MemberVisits(ctx context.Context, callerID, rawIDs, rawStart, rawEnd string) ([]Visit, error) {
	start, end, err := parseRange(rawStart, rawEnd)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, id := range strings.Split(rawIDs, config.IDSeparator) {
		if id = strings.TrimSpace(id); id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 || len(ids) > config.MaxVisitIDs {
		return nil, ErrInvalid(config.ErrInvalidIDs)
	}
	return s.store.VisitsVisibleTo(ctx, callerID, ids, start.String(), end.String())
}
