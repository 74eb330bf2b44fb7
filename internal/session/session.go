// Package session keeps calculator state machines addressable by id so that
// stateless HTTP requests can drive them one batch of keys at a time.
package session

import (
	"context"
	"errors"
	"time"

	"go-chi-calculator/internal/calculator"
)

var (
	// ErrSessionNotFound indicates that no session exists under the id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionLocked indicates that another request is pressing keys on the session.
	ErrSessionLocked = errors.New("session is locked, try again later")
	// ErrUnknownKey indicates a key that does not map to a calculator input.
	ErrUnknownKey = errors.New("unknown key")
)

// Session is one calculator and its bookkeeping.
type Session struct {
	ID        string           `json:"id"`
	State     calculator.State `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Store defines the persistence contract for sessions.
type Store interface {
	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Save creates or replaces the session and stamps UpdatedAt.
	Save(ctx context.Context, s *Session) error
	// Delete removes the session or returns ErrSessionNotFound.
	Delete(ctx context.Context, id string) error
	// List returns every stored session.
	List(ctx context.Context) ([]*Session, error)
	// Lock takes the per-session lock without waiting and returns its
	// release func, or ErrSessionLocked when the lock is held.
	Lock(ctx context.Context, id string) (func(), error)
}
