package remote

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
)

// LocalRoster reads squad membership from a vCard address book and delegates
// visit storage to Remote. Each CATEGORIES value of a card is a squad.
// Path is a file path or an http(s) URL.
type LocalRoster struct {
	Path    string
	Remote  Facade
	Fetcher RosterFetcher // nil: NewHTTPFetcher
}

type rosterCard struct {
	member engine.Member
	squads []string
}

// load parses the whole address book. Malformed cards are skipped.
func (l *LocalRoster) load(ctx context.Context, op string) ([]rosterCard, error) {
	if l.Path == "" {
		return nil, NewError(KindValidation, op, errors.New(config.ErrVCardPathEmpty))
	}

	if isRemotePath(l.Path) {
		fetcher := l.Fetcher
		if fetcher == nil {
			fetcher = NewHTTPFetcher()
		}
		rc, err := fetcher.Fetch(ctx, l.Path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return decodeRoster(ctx, op, rc)
	}

	f, err := os.Open(l.Path)
	if err != nil {
		kind := KindNetwork
		if errors.Is(err, os.ErrNotExist) {
			kind = KindNotFound
		}
		return nil, NewError(kind, op, fmt.Errorf("%s: %w", config.ErrVCardOpen, err))
	}
	defer func() { _ = f.Close() }()

	return decodeRoster(ctx, op, f)
}

func isRemotePath(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") || strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}

func decodeRoster(ctx context.Context, op string, r io.Reader) ([]rosterCard, error) {
	decoder := vcard.NewDecoder(r)
	var cards []rosterCard

	for {
		if err := ctx.Err(); err != nil {
			return nil, NewError(KindNetwork, op, err)
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompRoster,
				config.LogKeyError, err)
			// A broken header leaves the decoder unusable; stop there.
			if len(cards) == 0 {
				return nil, NewError(KindValidation, op, fmt.Errorf("%s: %w", config.ErrVCardParse, err))
			}
			break
		}

		cards = append(cards, rosterCard{
			member: memberFromCard(card),
			squads: categories(card),
		})
	}

	slog.Debug(config.MsgRosterLoaded,
		config.LogKeyComponent, config.CompRoster,
		config.LogKeyMembers, len(cards))
	return cards, nil
}

// memberFromCard picks the display name (FN > N > fallback) and a stable id:
// the card UID when present, otherwise a salted hash of the name.
func memberFromCard(card vcard.Card) engine.Member {
	name := config.FallbackName
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		name = fn.Value
	} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		name = strings.TrimSpace(strings.ReplaceAll(n.Value, ";", " "))
	}

	id := ""
	if uid := card.Get(config.VCardUID); uid != nil {
		id = strings.TrimSpace(uid.Value)
	}
	if id == "" {
		input := fmt.Sprintf(config.FormatHashInput, name, config.VCardUID, config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		id = fmt.Sprintf("%x", hash[:config.UIDHashLength])
	}
	return engine.Member{ID: id, Name: name}
}

func categories(card vcard.Card) []string {
	var out []string
	for _, f := range card[config.VCardCategories] {
		for _, c := range strings.Split(f.Value, config.CategorySeparator) {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

func hasSquad(c rosterCard, squad string) bool {
	for _, s := range c.squads {
		if strings.EqualFold(s, squad) {
			return true
		}
	}
	return false
}

// FetchRoster returns the cards tagged with groupID, in file order.
func (l *LocalRoster) FetchRoster(ctx context.Context, groupID string) ([]engine.Member, error) {
	cards, err := l.load(ctx, "FetchRoster")
	if err != nil {
		return nil, err
	}

	var members []engine.Member
	seen := make(map[string]bool)
	for _, c := range cards {
		if !hasSquad(c, groupID) || seen[c.member.ID] {
			continue
		}
		seen[c.member.ID] = true
		members = append(members, c.member)
	}
	if len(members) == 0 {
		return nil, NewError(KindNotFound, "FetchRoster", errors.New(config.ErrGroupNotFound))
	}
	return members, nil
}

// FetchSquads lists every category of the address book. The member id is
// ignored: a local address book describes the user's own circle.
func (l *LocalRoster) FetchSquads(ctx context.Context, _ string) ([]engine.Squad, error) {
	cards, err := l.load(ctx, "FetchSquads")
	if err != nil {
		return nil, err
	}

	var squads []engine.Squad
	seen := make(map[string]bool)
	for _, c := range cards {
		for _, s := range c.squads {
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			squads = append(squads, engine.Squad{ID: s, Name: s})
		}
	}
	return squads, nil
}

// FetchGroupVisits collects the visits of the roster members from Remote,
// in one call when Remote is a MemberVisitsFetcher. Otherwise members are
// read one by one and those the backend does not know or will not show
// are skipped.
func (l *LocalRoster) FetchGroupVisits(ctx context.Context, groupID string, start, end engine.Date) ([]engine.Visit, error) {
	members, err := l.FetchRoster(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if l.Remote == nil {
		return nil, nil
	}

	if batch, ok := l.Remote.(MemberVisitsFetcher); ok {
		ids := make([]string, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
		}
		return batch.FetchMemberVisits(ctx, ids, start, end)
	}

	w := engine.Window{Start: start, End: end}
	var out []engine.Visit
	for _, m := range members {
		visits, err := l.Remote.FetchVisits(ctx, m.ID)
		if err != nil {
			if hiddenMember(err) {
				continue
			}
			return nil, err
		}
		for _, v := range visits {
			if w.Contains(v.Date) {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

// hiddenMember reports a per-member read the backend refused for that member
// alone. A 401 means the caller's own token failed and is not skipped.
func hiddenMember(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindNotFound || e.Status == http.StatusForbidden
}

func (l *LocalRoster) FetchVisits(ctx context.Context, memberID string) ([]engine.Visit, error) {
	if l.Remote == nil {
		return nil, NewError(KindNotFound, "FetchVisits", errors.New(config.ErrUserNotFound))
	}
	return l.Remote.FetchVisits(ctx, memberID)
}

func (l *LocalRoster) AddVisit(ctx context.Context, memberID string, date engine.Date) error {
	if l.Remote == nil {
		return NewError(KindValidation, "AddVisit", errors.New(config.ErrBackendURLEmpty))
	}
	return l.Remote.AddVisit(ctx, memberID, date)
}

func (l *LocalRoster) RemoveVisit(ctx context.Context, memberID string, date engine.Date) error {
	if l.Remote == nil {
		return NewError(KindValidation, "RemoveVisit", errors.New(config.ErrBackendURLEmpty))
	}
	return l.Remote.RemoveVisit(ctx, memberID, date)
}
