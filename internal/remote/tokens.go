package remote

import (
	"errors"

	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/zalando/go-keyring"
)

// TokenSource supplies the bearer token attached to each request.
// An empty token sends the request unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed token, mostly for tests and scripts.
type StaticToken string

func (t StaticToken) Token() (string, error) {
	return string(t), nil
}

// KeyringTokens keeps the bearer token of Username in the OS keyring,
// next to the password saved by the settings window.
type KeyringTokens struct {
	Username string
}

func (k KeyringTokens) account() string {
	return config.KeyringTokenPref + k.Username
}

// Token returns the stored token, or "" when none was saved yet.
func (k KeyringTokens) Token() (string, error) {
	if k.Username == "" {
		return "", nil
	}
	tok, err := keyring.Get(config.KeyringService, k.account())
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

// Store saves token for later requests.
func (k KeyringTokens) Store(token string) error {
	return keyring.Set(config.KeyringService, k.account(), token)
}

// Clear forgets the stored token.
func (k KeyringTokens) Clear() error {
	err := keyring.Delete(config.KeyringService, k.account())
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
