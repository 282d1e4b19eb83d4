package remote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-gymtrack/internal/config"
)

// RosterFetcher downloads a shared vCard address book.
type RosterFetcher interface {
	Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error)
}

// HTTPFetcher implements RosterFetcher over net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch retrieves the address book at targetURL. Credentials embedded in the
// URL are sent as basic auth and never logged. The body is capped at
// MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	const op = "FetchRoster"

	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, NewError(KindValidation, op, fmt.Errorf("%s: %w", config.ErrInvalidURL, err))
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, NewError(KindValidation, op, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme))
	}

	user, pass := "", ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
		u.User = nil
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, NewError(KindValidation, op, fmt.Errorf("%s: %w", config.ErrBuildRequest, err))
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, NewError(KindNetwork, op, fmt.Errorf("%s: %w", config.ErrVCardFetch, err))
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgRosterStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, &Error{
			Kind:   kindForStatus(resp.StatusCode),
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s: %d %s", config.ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	log.Info(config.MsgRosterFetch, slog.Int64(config.LogKeyLength, resp.ContentLength))

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser caps reads while still closing the underlying body.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
