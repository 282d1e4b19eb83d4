package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-gymtrack/internal/config"
	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path with WAL and foreign keys enabled.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(config.SQLiteDriver, path+config.SQLitePragmas)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBOpen, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrDBPing, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	return db, nil
}

// InitDB creates the schema if it does not exist.
//
// PRE: db is open.
// POST: users, visits, squads and squad_members exist.
func InitDB(db *sql.DB) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS visits (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE (user_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_visits_date ON visits(date)`,
		`CREATE TABLE IF NOT EXISTS squads (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			owner_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS squad_members (
			squad_id  TEXT NOT NULL REFERENCES squads(id) ON DELETE CASCADE,
			user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			joined_at TEXT NOT NULL,
			PRIMARY KEY (squad_id, user_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", config.ErrDBInit, err)
		}
	}
	return nil
}

// Store runs the SQL of the backend.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// ---------- users ----------

func (s *Store) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, formatTime(u.CreatedAt))
	return err
}

// UserByUsername returns nil when no user matches.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username))
}

// UserByID returns nil when no user matches.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = parseTime(created)
	return &u, nil
}

// ---------- visits ----------

// InsertVisit stores v unless the user already has a visit that day.
// It returns whether a row was created.
func (s *Store) InsertVisit(ctx context.Context, v *Visit) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (id, user_id, date, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO NOTHING`,
		v.ID, v.UserID, v.Date, formatTime(v.Timestamp))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// VisitOn returns nil when the user has no visit on date.
func (s *Store) VisitOn(ctx context.Context, userID, date string) (*Visit, error) {
	var v Visit
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, created_at FROM visits WHERE user_id = ? AND date = ?`,
		userID, date).Scan(&v.ID, &v.UserID, &v.Date, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.Timestamp = parseTime(created)
	return &v, nil
}

func (s *Store) DeleteVisit(ctx context.Context, userID, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) VisitsOf(ctx context.Context, userID string) ([]Visit, error) {
	return s.queryVisits(ctx,
		`SELECT id, user_id, date, created_at FROM visits WHERE user_id = ? ORDER BY date`, userID)
}

// SquadVisits returns the visits of every member of squadID between start
// and end inclusive (YYYY-MM-DD strings compare chronologically).
func (s *Store) SquadVisits(ctx context.Context, squadID, start, end string) ([]Visit, error) {
	return s.queryVisits(ctx,
		`SELECT v.id, v.user_id, v.date, v.created_at
		   FROM visits v
		   JOIN squad_members m ON m.user_id = v.user_id
		  WHERE m.squad_id = ? AND v.date >= ? AND v.date <= ?
		  ORDER BY v.date, v.user_id`, squadID, start, end)
}

// VisitsVisibleTo returns the visits of ids between start and end that
// viewerID may read: its own and those of members sharing a squad with it.
func (s *Store) VisitsVisibleTo(ctx context.Context, viewerID string, ids []string, start, end string) ([]Visit, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+4)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, start, end, viewerID, viewerID)

	return s.queryVisits(ctx,
		`SELECT v.id, v.user_id, v.date, v.created_at
		   FROM visits v
		  WHERE v.user_id IN (`+placeholders+`)
		    AND v.date >= ? AND v.date <= ?
		    AND (v.user_id = ? OR EXISTS (
		         SELECT 1
		           FROM squad_members mine
		           JOIN squad_members theirs ON theirs.squad_id = mine.squad_id
		          WHERE mine.user_id = ? AND theirs.user_id = v.user_id))
		  ORDER BY v.date, v.user_id`, args...)
}

func (s *Store) queryVisits(ctx context.Context, query string, args ...any) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Visit{}
	for rows.Next() {
		var v Visit
		var created string
		if err := rows.Scan(&v.ID, &v.UserID, &v.Date, &created); err != nil {
			return nil, err
		}
		v.Timestamp = parseTime(created)
		out = append(out, v)
	}
	return out, rows.Err()
}

// ---------- squads ----------

// CreateSquad inserts sq and makes its owner the first member.
func (s *Store) CreateSquad(ctx context.Context, sq *Squad, ownerID string, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO squads (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)`,
		sq.ID, sq.Name, ownerID, formatTime(at)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO squad_members (squad_id, user_id, joined_at) VALUES (?, ?, ?)`,
		sq.ID, ownerID, formatTime(at)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) SquadExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM squads WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}

// AddMember is idempotent.
func (s *Store) AddMember(ctx context.Context, squadID, userID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO squad_members (squad_id, user_id, joined_at) VALUES (?, ?, ?)
		 ON CONFLICT (squad_id, user_id) DO NOTHING`,
		squadID, userID, formatTime(at))
	return err
}

// Members lists the members of squadID in joining order.
func (s *Store) Members(ctx context.Context, squadID string) ([]Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.username
		   FROM squad_members m
		   JOIN users u ON u.id = m.user_id
		  WHERE m.squad_id = ?
		  ORDER BY m.joined_at, m.rowid`, squadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SquadsOf lists the squads userID belongs to, by name.
func (s *Store) SquadsOf(ctx context.Context, userID string) ([]Squad, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.name
		   FROM squads s
		   JOIN squad_members m ON m.squad_id = s.id
		  WHERE m.user_id = ?
		  ORDER BY s.name, s.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Squad{}
	for rows.Next() {
		var sq Squad
		if err := rows.Scan(&sq.ID, &sq.Name); err != nil {
			return nil, err
		}
		out = append(out, sq)
	}
	return out, rows.Err()
}
