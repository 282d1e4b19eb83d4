package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
)

// HTTPClient implements Facade, MemberVisitsFetcher, SquadDirectory,
// SquadManager and Authenticator against the GymTrack REST API.
type HTTPClient struct {
	Client  *http.Client
	Tokens  TokenSource
	Retries int           // extra attempts for idempotent GETs
	Backoff time.Duration // base delay between attempts, grows linearly

	base    *url.URL
	safeURL string
}

// NewHTTPClient validates baseURL and returns a client with configured timeouts.
func NewHTTPClient(baseURL string, tokens TokenSource) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, errors.New(config.ErrBackendURLEmpty)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	// Only HTTP or HTTPS.
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	return &HTTPClient{
		Client:  &http.Client{Timeout: config.HTTPTimeout},
		Tokens:  tokens,
		Retries: config.DefaultRetries,
		Backoff: config.RetryBackoff,
		base:    u,
		// Query strings may carry secrets, keep them out of logs.
		safeURL: u.Scheme + "://" + u.Host + u.Path,
	}, nil
}

// BaseURL returns the sanitized backend URL.
func (c *HTTPClient) BaseURL() string {
	return c.safeURL
}

// -----------------------------------------------------------------------------
// Wire types
// -----------------------------------------------------------------------------

type visitDTO struct {
	ID        string      `json:"id,omitempty"`
	UserID    string      `json:"userId"`
	Date      engine.Date `json:"date"`
	Timestamp time.Time   `json:"timestamp,omitempty"`
}

type dateBody struct {
	Date engine.Date `json:"date"`
}

type memberDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type squadDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type nameBody struct {
	Name string `json:"name"`
}

type joinBody struct {
	UserID string `json:"userId"`
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authDTO struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type apiErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toVisits(in []visitDTO) []engine.Visit {
	out := make([]engine.Visit, 0, len(in))
	for _, v := range in {
		if v.Date.IsZero() {
			continue
		}
		out = append(out, engine.Visit{MemberID: v.UserID, Date: v.Date, At: v.Timestamp})
	}
	return out
}

// -----------------------------------------------------------------------------
// Facade operations
// -----------------------------------------------------------------------------

func (c *HTTPClient) FetchVisits(ctx context.Context, memberID string) ([]engine.Visit, error) {
	var out []visitDTO
	if err := c.do(ctx, "FetchVisits", http.MethodGet, userPath(config.PathUserVisits, memberID), nil, nil, &out); err != nil {
		return nil, err
	}
	visits := toVisits(out)
	// The endpoint is per member; fill ids the server left implicit.
	for i := range visits {
		if visits[i].MemberID == "" {
			visits[i].MemberID = memberID
		}
	}
	return visits, nil
}

func (c *HTTPClient) AddVisit(ctx context.Context, memberID string, date engine.Date) error {
	return c.do(ctx, "AddVisit", http.MethodPost, userPath(config.PathUserVisits, memberID), nil, dateBody{Date: date}, nil)
}

func (c *HTTPClient) RemoveVisit(ctx context.Context, memberID string, date engine.Date) error {
	return c.do(ctx, "RemoveVisit", http.MethodDelete, userPath(config.PathUserVisits, memberID), nil, dateBody{Date: date}, nil)
}

func (c *HTTPClient) FetchRoster(ctx context.Context, groupID string) ([]engine.Member, error) {
	var out []memberDTO
	if err := c.do(ctx, "FetchRoster", http.MethodGet, userPath(config.PathGroupMembers, groupID), nil, nil, &out); err != nil {
		return nil, err
	}
	members := make([]engine.Member, 0, len(out))
	for _, m := range out {
		members = append(members, engine.Member{ID: m.ID, Name: m.Name})
	}
	return members, nil
}

func (c *HTTPClient) FetchGroupVisits(ctx context.Context, groupID string, start, end engine.Date) ([]engine.Visit, error) {
	q := url.Values{}
	q.Set(config.QueryStart, start.String())
	q.Set(config.QueryEnd, end.String())

	var out []visitDTO
	if err := c.do(ctx, "FetchGroupVisits", http.MethodGet, userPath(config.PathGroupVisits, groupID), q, nil, &out); err != nil {
		return nil, err
	}
	return toVisits(out), nil
}

// FetchMemberVisits asks for memberIDs in batches of config.MaxVisitIDs.
func (c *HTTPClient) FetchMemberVisits(ctx context.Context, memberIDs []string, start, end engine.Date) ([]engine.Visit, error) {
	var visits []engine.Visit
	for len(memberIDs) > 0 {
		n := min(len(memberIDs), config.MaxVisitIDs)
		q := url.Values{}
		q.Set(config.QueryIDs, strings.Join(memberIDs[:n], config.IDSeparator))
		q.Set(config.QueryStart, start.String())
		q.Set(config.QueryEnd, end.String())

		var out []visitDTO
		if err := c.do(ctx, "FetchMemberVisits", http.MethodGet, config.RouteVisits, q, nil, &out); err != nil {
			return nil, err
		}
		visits = append(visits, toVisits(out)...)
		memberIDs = memberIDs[n:]
	}
	return visits, nil
}

func (c *HTTPClient) FetchSquads(ctx context.Context, memberID string) ([]engine.Squad, error) {
	var out []squadDTO
	if err := c.do(ctx, "FetchSquads", http.MethodGet, userPath(config.PathUserSquads, memberID), nil, nil, &out); err != nil {
		return nil, err
	}
	squads := make([]engine.Squad, 0, len(out))
	for _, s := range out {
		squads = append(squads, engine.Squad{ID: s.ID, Name: s.Name})
	}
	return squads, nil
}

func (c *HTTPClient) CreateSquad(ctx context.Context, name string) (engine.Squad, error) {
	var out squadDTO
	if err := c.do(ctx, "CreateSquad", http.MethodPost, config.RouteGroups, nil, nameBody{Name: name}, &out); err != nil {
		return engine.Squad{}, err
	}
	return engine.Squad{ID: out.ID, Name: out.Name}, nil
}

func (c *HTTPClient) JoinSquad(ctx context.Context, groupID, memberID string) error {
	return c.do(ctx, "JoinSquad", http.MethodPost, userPath(config.PathGroupMembers, groupID), nil, joinBody{UserID: memberID}, nil)
}

func (c *HTTPClient) SignUp(ctx context.Context, username, password string) (Credentials, error) {
	return c.authenticate(ctx, "SignUp", config.RouteSignUp, username, password)
}

func (c *HTTPClient) SignIn(ctx context.Context, username, password string) (Credentials, error) {
	return c.authenticate(ctx, "SignIn", config.RouteSignIn, username, password)
}

func (c *HTTPClient) authenticate(ctx context.Context, op, path, username, password string) (Credentials, error) {
	var out authDTO
	if err := c.do(ctx, op, http.MethodPost, path, nil, credentialsBody{Username: username, Password: password}, &out); err != nil {
		return Credentials{}, err
	}
	return Credentials{MemberID: out.UserID, Username: out.Username, Token: out.Token}, nil
}

func userPath(format, id string) string {
	return fmt.Sprintf(format, url.PathEscape(id))
}

// -----------------------------------------------------------------------------
// Transport
// -----------------------------------------------------------------------------

// do sends one API call and decodes the JSON answer into out (if non-nil).
// GETs are retried on network-kind failures; mutations are sent once.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return NewError(KindValidation, op, fmt.Errorf("%s: %w", config.ErrEncodeBody, err))
		}
		payload = b
	}

	// path carries escaped ids; keep both forms so they are not escaped twice.
	target := *c.base
	target.RawPath = c.base.EscapedPath() + config.APIPrefix + path
	unescaped, err := url.PathUnescape(target.RawPath)
	if err != nil {
		return NewError(KindValidation, op, fmt.Errorf("%s: %w", config.ErrBuildRequest, err))
	}
	target.Path = unescaped
	target.RawQuery = query.Encode()

	attempts := 1
	if method == http.MethodGet && c.Retries > 0 {
		attempts += c.Retries
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompRemote),
		slog.String(config.LogKeyMethod, method),
		slog.String(config.LogKeyURL, c.safeURL+config.APIPrefix+path),
	)

	var lastErr *Error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			log.Debug(config.MsgRetry, config.LogKeyAttempt, attempt)
			select {
			case <-ctx.Done():
				return NewError(KindNetwork, op, ctx.Err())
			case <-time.After(c.Backoff * time.Duration(attempt-1)):
			}
		}

		lastErr = c.roundTrip(ctx, log, op, method, target.String(), payload, out)
		if lastErr == nil {
			return nil
		}
		if lastErr.Kind != KindNetwork || ctx.Err() != nil {
			break
		}
	}

	log.Warn(config.MsgRequestFailed,
		config.LogKeyStatus, lastErr.Status,
		config.LogKeyError, lastErr.Err,
	)
	return lastErr
}

func (c *HTTPClient) roundTrip(ctx context.Context, log *slog.Logger, op, method, target string, payload []byte, out any) *Error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return NewError(KindValidation, op, fmt.Errorf("%s: %w", config.ErrBuildRequest, err))
	}

	requestID := uuid.NewString()
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	req.Header.Set(config.HeaderRequestID, requestID)
	if payload != nil {
		req.Header.Set(config.HeaderContentType, config.MimeJSON)
	}

	if c.Tokens != nil {
		tok, err := c.Tokens.Token()
		if err != nil {
			return NewError(KindAuth, op, err)
		}
		if tok != "" {
			req.Header.Set(config.HeaderAuthorization, config.AuthScheme+" "+tok)
		}
	}

	log.Debug(config.MsgRequest, config.LogKeyRequestID, requestID)

	resp, err := c.Client.Do(req)
	if err != nil {
		return NewError(KindNetwork, op, fmt.Errorf("%s: %w", config.ErrNetworkFetch, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, config.MaxErrorBodySize))
		return nil
	}

	limited := io.LimitReader(resp.Body, config.MaxHTTPResponseSize)
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return NewError(KindNetwork, op, fmt.Errorf("%s: %w", config.ErrDecodeBody, err))
	}
	return nil
}

// statusError turns a 4xx/5xx answer into an *Error, keeping the server message.
func statusError(op string, resp *http.Response) *Error {
	msg := fmt.Sprintf("%s: %d %s", config.ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode))

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, config.MaxErrorBodySize))
	var apiErr apiErrorDTO
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Code + ": " + apiErr.Message
	}

	return &Error{
		Kind:   kindForStatus(resp.StatusCode),
		Op:     op,
		Status: resp.StatusCode,
		Err:    errors.New(msg),
	}
}
