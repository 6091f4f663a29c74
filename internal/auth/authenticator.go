package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/frontdesk/internal/model"
	"github.com/iliyamo/frontdesk/internal/repository"
	"github.com/iliyamo/frontdesk/internal/utils"
)

// ErrInvalidCredentials covers unknown users, wrong passwords and disabled
// accounts alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserStore looks staff accounts up by login name.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// Authenticator signs users in and out.  A sign-in creates a server-side
// session and an access token naming it; the token is only honoured while
// the session exists.
type Authenticator struct {
	users    UserStore
	sessions SessionStore
	secret   string
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthenticator(users UserStore, sessions SessionStore, secret string, ttl time.Duration, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Authenticator{users: users, sessions: sessions, secret: secret, ttl: ttl, log: log, now: time.Now}
}

// SignIn checks credentials and opens a session.
func (a *Authenticator) SignIn(ctx context.Context, username, password string) (Session, utils.AccessToken, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return Session{}, utils.AccessToken{}, ErrInvalidCredentials
	}
	u, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return Session{}, utils.AccessToken{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, utils.AccessToken{}, fmt.Errorf("load user: %w", err)
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return Session{}, utils.AccessToken{}, ErrInvalidCredentials
	}
	if !KnownRole(u.Role) {
		a.log.Warn("user has unknown role", zap.String("username", u.Username), zap.String("role", u.Role))
		return Session{}, utils.AccessToken{}, ErrInvalidCredentials
	}

	now := a.now().UTC()
	s := Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}
	if err := a.sessions.Save(ctx, s, a.ttl); err != nil {
		return Session{}, utils.AccessToken{}, fmt.Errorf("save session: %w", err)
	}
	tok, err := utils.NewAccessToken(a.secret, s.Username, s.Role, s.ID, a.ttl)
	if err != nil {
		_ = a.sessions.Delete(ctx, s.ID)
		return Session{}, utils.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	a.log.Info("signed in", zap.String("username", s.Username), zap.String("role", s.Role))
	return s, tok, nil
}

// Resolve maps an access token to its live session.
func (a *Authenticator) Resolve(ctx context.Context, raw string) (*Session, error) {
	claims, err := utils.ParseAccessToken(a.secret, raw)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s, err := a.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if s.Username != claims.Subject {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

// SignOut destroys the session.  Signing out twice is not an error.
func (a *Authenticator) SignOut(ctx context.Context, s *Session) error {
	if s == nil {
		return nil
	}
	if err := a.sessions.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	a.log.Info("signed out", zap.String("username", s.Username))
	return nil
}
