// Package gate implements the access gate guarding the editors: a
// single shared-secret check whose result is persisted as a boolean
// flag. The flag is plain text with no cryptographic binding; this is
// access obfuscation for a single-user tool, not authentication.
package gate

import (
	"errors"
	"sync"
)

// State is the gate's position in its Loading -> Unauthenticated ->
// Authenticated machine.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// FlagKey is the persisted flag's key. Only the value "true" counts as
// authenticated; anything else (or absence) does not.
const FlagKey = "app_authenticated"

// ErrInvalidCode is returned on a mismatched submission. The failure
// mode is purely a cosmetic retry: no lockout, no rate limiting.
var ErrInvalidCode = errors.New("invalid access code")

// FlagStore isolates the flag persistence so it is mockable in tests.
type FlagStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Clear(key string) error
}

// Gate guards the editors behind the shared secret.
type Gate struct {
	mu     sync.Mutex
	store  FlagStore
	secret string
	state  State
}

// New builds a gate and performs the mount-time check: a persisted
// "true" flag transitions straight to Authenticated. Store read errors
// leave the gate unauthenticated.
func New(store FlagStore, secret string) *Gate {
	g := &Gate{store: store, secret: secret, state: StateLoading}
	v, err := store.Get(FlagKey)
	if err == nil && v == "true" {
		g.state = StateAuthenticated
	} else {
		g.state = StateUnauthenticated
	}
	return g
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Authenticated reports whether the gate is open.
func (g *Gate) Authenticated() bool {
	return g.State() == StateAuthenticated
}

// Submit compares the submitted code against the secret, case
// sensitively and exactly. On match the gate opens and the flag is
// persisted; on mismatch it returns ErrInvalidCode and stays shut.
func (g *Gate) Submit(code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if code != g.secret {
		return ErrInvalidCode
	}
	g.state = StateAuthenticated
	return g.store.Set(FlagKey, "true")
}

// Logout clears the persisted flag and returns to Unauthenticated.
func (g *Gate) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateUnauthenticated
	return g.store.Clear(FlagKey)
}
