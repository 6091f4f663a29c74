package auth

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned for unknown, expired or signed-out
// sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is the signed-in user as seen by request handlers.  A nil
// *Session means nobody is signed in; every method is safe to call on it
// and denies everything.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"userId"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) role() string {
	if s == nil {
		return ""
	}
	return s.Role
}

func (s *Session) CanAccess(screen Screen) bool { return CanAccess(s.role(), screen) }
func (s *Session) CanEditBookings() bool        { return CanEditBookings(s.role()) }
func (s *Session) CanViewFinancials() bool      { return CanViewFinancials(s.role()) }
func (s *Session) IsHousekeeping() bool         { return IsHousekeeping(s.role()) }
func (s *Session) Screens() []Screen            { return Screens(s.role()) }

// SessionStore persists sessions between requests.  Implementations key
// entries by a digest of the session id.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
