package remote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tartampluch/go-gymtrack/internal/config"
)

// Kind classifies facade failures for the UI.
type Kind int

const (
	// KindNetwork covers transport failures, timeouts and 5xx answers.
	KindNetwork Kind = iota + 1
	// KindValidation is a rejected input, such as a future-dated visit.
	KindValidation
	// KindNotFound means the member, group or roster does not exist.
	KindNotFound
	// KindAuth means the bearer token is missing, expired or not allowed.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return config.ErrKindNetwork
	case KindValidation:
		return config.ErrKindValidation
	case KindNotFound:
		return config.ErrKindNotFound
	case KindAuth:
		return config.ErrKindAuth
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNetwork    = errors.New(config.ErrKindNetwork)
	ErrValidation = errors.New(config.ErrKindValidation)
	ErrNotFound   = errors.New(config.ErrKindNotFound)
	ErrAuth       = errors.New(config.ErrKindAuth)
)

// Error is the single error type returned by facade operations.
type Error struct {
	Kind   Kind
	Op     string // facade operation, e.g. "AddVisit"
	Status int    // HTTP status, 0 for transport or local failures
	Err    error
}

// NewError wraps err with a kind and an operation name.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (%d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) and friends match by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrAuth:
		return e.Kind == KindAuth
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// kindForStatus maps an HTTP error status to a kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return KindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status >= 400 && status < 500 && status != http.StatusRequestTimeout && status != http.StatusTooManyRequests:
		return KindValidation
	default:
		return KindNetwork
	}
}
