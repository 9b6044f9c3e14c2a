package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vasstra/vasstra-storefront/pkg/kv"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
)

// User is the persisted account snapshot kept alongside the token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store persists the session token and user snapshot and fans out
// login/logout transitions to subscribers. It is not an authenticator:
// tokens are never verified here, only inspected for expiry so a stale
// token reads as absent.
type Store struct {
	mu    sync.Mutex
	token string
	user  *User
	subs  []func(loggedIn bool)

	snapshots kv.Store
	logg      *logger.Logger
	parser    *jwt.Parser
	now       func() time.Time
}

// NewStore hydrates the session from its snapshot keys.
func NewStore(ctx context.Context, snapshots kv.Store, logg *logger.Logger) (*Store, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}

	s := &Store{
		snapshots: snapshots,
		logg:      logg,
		parser:    jwt.NewParser(),
		now:       time.Now,
	}
	kv.Hydrate(ctx, snapshots, kv.KeyAuthToken, &s.token)
	var user User
	if kv.Hydrate(ctx, snapshots, kv.KeyAuthUser, &user) {
		s.user = &user
	}
	return s, nil
}

// Token returns the active session token, or "" when no token is stored
// or the stored token is expired.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.expired(s.token) {
		return ""
	}
	return s.token
}

// User returns the persisted account snapshot, or nil when logged out.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

// SetSession stores the token and user snapshot and announces login.
func (s *Store) SetSession(ctx context.Context, token string, user User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	if err := kv.Persist(ctx, s.snapshots, kv.KeyAuthToken, token); err != nil {
		s.logError(ctx, "persist auth token", err)
	}
	if err := kv.Persist(ctx, s.snapshots, kv.KeyAuthUser, user); err != nil {
		s.logError(ctx, "persist auth user", err)
	}
	subs := append([]func(bool){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(true)
	}
}

// Clear drops the session and announces logout.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	if err := s.snapshots.Delete(ctx, kv.KeyAuthToken); err != nil {
		s.logError(ctx, "delete auth token", err)
	}
	if err := s.snapshots.Delete(ctx, kv.KeyAuthUser); err != nil {
		s.logError(ctx, "delete auth user", err)
	}
	subs := append([]func(bool){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(false)
	}
}

// Subscribe registers a login/logout listener. Listeners run on the
// goroutine that mutates the session.
func (s *Store) Subscribe(fn func(loggedIn bool)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// expired inspects the unverified exp claim. Tokens without a parseable
// exp claim are kept: expiry enforcement belongs to the backend.
func (s *Store) expired(token string) bool {
	parsed, _, err := s.parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(s.logg.WithStore(ctx, "session"), msg, err)
	}
}
