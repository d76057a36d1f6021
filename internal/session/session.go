// Package session holds the signed-in identity and its bearer token,
// persists it across runs, and publishes changes to subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/types"
)

var (
	// ErrInvalidSession is returned by Login when the identity or the
	// token is missing.
	ErrInvalidSession = errors.New("session requires both a user and a token")
	// ErrNoSession is returned by Claims when nobody is signed in.
	ErrNoSession = errors.New("no active session")
)

// Listener receives the new session, or nil after a logout.
type Listener func(*types.Session)

// Store is the process-wide session. It must be initialised with Init
// before any network activity.
type Store struct {
	storage Storage
	logger  *zap.Logger

	mu        sync.RWMutex
	current   *types.Session
	listeners map[int]Listener
	nextID    int
}

func NewStore(storage Storage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		storage:   storage,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Init restores a persisted session. A partial or unreadable leftover is
// cleared and the store starts anonymous.
func (s *Store) Init(ctx context.Context) error {
	restored, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("discarding stored session", zap.Error(err))
		if clearErr := s.storage.Clear(ctx); clearErr != nil {
			return fmt.Errorf("failed to clear partial session: %w", clearErr)
		}
		restored = nil
	}

	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()

	if restored != nil {
		s.logger.Debug("session restored", zap.Int64("user_id", restored.User.ID))
	}
	s.publish(restored)
	return nil
}

// Login persists and publishes sess.
func (s *Store) Login(ctx context.Context, sess types.Session) error {
	if !sess.Valid() {
		return ErrInvalidSession
	}
	if err := s.storage.Save(ctx, sess); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.logger.Info("signed in", zap.Int64("user_id", sess.User.ID), zap.String("username", sess.User.Username))
	s.publish(&sess)
	return nil
}

// Logout clears the persisted and published session. Subscribers are
// notified even when storage fails, so the in-memory state never outlives
// the user's intent to sign out.
func (s *Store) Logout(ctx context.Context) error {
	err := s.storage.Clear(ctx)

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.logger.Info("signed out")
	s.publish(nil)
	return err
}

// Current returns a copy of the active session, or nil.
func (s *Store) Current() *types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Token returns the bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// User returns the signed-in identity, or nil when anonymous.
func (s *Store) User() *types.UserSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

// Subscribe registers fn for future changes. Call the returned function to
// stop receiving them.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(sess *types.Session) {
	s.mu.RLock()
	fns := make([]Listener, 0, len(s.listeners))
	// registration order
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		var cp *types.Session
		if sess != nil {
			c := *sess
			cp = &c
		}
		fn(cp)
	}
}

// Claims decodes the bearer token without verifying its signature. The
// result is for display only.
func (s *Store) Claims() (*types.TokenClaims, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNoSession
	}
	claims := &types.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}
