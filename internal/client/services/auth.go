// Package services contains the application services of the tripcart client.
// This file defines the session manager: restoring a stored session,
// login, registration and logout.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/dmitrijs2005/tripcart/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tripcart/internal/logging"
)

// SessionState is the lifecycle state of the session.
type SessionState string

const (
	StateRestoring     SessionState = "restoring"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// AuthService owns the session: the current user, the bearer token and the
// copy of the token kept in the metadata store.
//
// Contract:
//   - Restore: re-derive the user from the stored token, or drop the token.
//   - Login / Register: authenticate remotely and persist the new token.
//   - Logout: forget everything; always ends anonymous.
//
// Only one of Restore, Login and Register runs at a time; an overlapping call
// fails fast with ErrOperationInProgress. A user is never held without a
// token.
type AuthService struct {
	client client.Client
	store  metadata.Repository
	log    logging.Logger
	now    func() time.Time

	op sync.Mutex

	mu    sync.RWMutex
	state SessionState
	user  *models.User
	token string
}

// NewAuthService starts in StateRestoring when a token is stored and in
// StateAnonymous otherwise. Call Restore to settle the restoring state.
func NewAuthService(ctx context.Context, c client.Client, store metadata.Repository, logger logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	s := &AuthService{
		client: c,
		store:  store,
		log:    logger.With("component", "session"),
		now:    time.Now,
		state:  StateAnonymous,
	}

	token, err := store.Get(ctx, metadata.KeyToken)
	if err != nil {
		s.log.Warn(ctx, "read stored token", "error", err)
		return s
	}
	if len(token) > 0 {
		s.state = StateRestoring
	}
	return s
}

// Restore settles the session from the stored token. With no token it ends
// anonymous without any request. A token the server rejects, or that cannot
// be checked, is deleted. A JWT that has already expired is deleted without
// asking the server. Failures are logged, never returned; the only error is
// ErrOperationInProgress.
func (s *AuthService) Restore(ctx context.Context) error {
	if !s.op.TryLock() {
		return ErrOperationInProgress
	}
	defer s.op.Unlock()

	raw, err := s.store.Get(ctx, metadata.KeyToken)
	if err != nil {
		s.log.Warn(ctx, "read stored token", "error", err)
		s.setAnonymous()
		return nil
	}
	token := string(raw)
	if token == "" {
		s.setAnonymous()
		return nil
	}

	s.mu.Lock()
	s.state = StateRestoring
	s.mu.Unlock()

	if tokenExpired(token, s.now()) {
		s.log.Info(ctx, "stored token expired")
		s.dropStoredToken(ctx)
		s.setAnonymous()
		return nil
	}

	user, err := s.client.CurrentUser(client.WithToken(ctx, token))
	if err != nil {
		// A caller that gave up has learned nothing about the token.
		if ctx.Err() == nil {
			s.log.Info(ctx, "stored token rejected", "error", err)
			s.dropStoredToken(ctx)
		}
		s.setAnonymous()
		return nil
	}

	s.setAuthenticated(user, token)
	s.log.Info(ctx, "session restored", "username", user.Username)
	return nil
}

// Login authenticates with username and password. On failure the returned
// error matches ErrAuthFailed, reads "login failed", and neither the session
// nor the store has changed.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidCredentials
	}
	return s.authenticate(ctx, "login failed", func(ctx context.Context) (*client.AuthResult, error) {
		return s.client.Login(ctx, username, password)
	})
}

// Register creates an account and signs in with it. Failure semantics match
// Login, with the message "registration failed".
func (s *AuthService) Register(ctx context.Context, name, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidCredentials
	}
	return s.authenticate(ctx, "registration failed", func(ctx context.Context) (*client.AuthResult, error) {
		return s.client.Register(ctx, name, username, password)
	})
}

func (s *AuthService) authenticate(
	ctx context.Context,
	failMsg string,
	call func(context.Context) (*client.AuthResult, error),
) error {
	if !s.op.TryLock() {
		return ErrOperationInProgress
	}
	defer s.op.Unlock()

	res, err := call(ctx)
	if err != nil {
		s.log.Warn(ctx, failMsg, "error", err)
		return &AuthError{Msg: failMsg, Err: err}
	}

	user := res.User
	if user == nil {
		// Token-only response: learn who we are before committing anything.
		user, err = s.client.CurrentUser(client.WithToken(ctx, res.Token))
		if err != nil {
			s.log.Warn(ctx, failMsg, "stage", "fetch user", "error", err)
			return &AuthError{Msg: failMsg, Err: err}
		}
	}

	if err := s.store.Set(ctx, metadata.KeyToken, []byte(res.Token)); err != nil {
		s.log.Error(ctx, failMsg, "stage", "persist token", "error", err)
		return &AuthError{Msg: failMsg, Err: fmt.Errorf("persist token: %w", err)}
	}

	s.setAuthenticated(user, res.Token)
	s.log.Info(ctx, "signed in", "username", user.Username)
	return nil
}

// Logout removes the stored token and clears the session. It waits for an
// in-flight Restore, Login or Register so that nothing is committed after
// it. A failing store delete is logged only.
func (s *AuthService) Logout(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	s.dropStoredToken(ctx)
	s.setAnonymous()
	s.log.Info(ctx, "signed out")
}

// Forget signs out and erases everything kept in the local store. It
// returns how many entries were removed. Like Logout it waits for an
// in-flight session operation; the session ends anonymous even when the store
// fails.
func (s *AuthService) Forget(ctx context.Context) (int, error) {
	s.op.Lock()
	defer s.op.Unlock()
	defer s.setAnonymous()

	entries, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list local data: %w", err)
	}
	if err := s.store.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear local data: %w", err)
	}
	s.log.Info(ctx, "local data erased", "entries", len(entries))
	return len(entries), nil
}

func (s *AuthService) dropStoredToken(ctx context.Context) {
	if err := s.store.Delete(ctx, metadata.KeyToken); err != nil {
		s.log.Error(ctx, "delete stored token", "error", err)
	}
}

func (s *AuthService) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.user = nil
	s.token = ""
}

func (s *AuthService) setAuthenticated(user *models.User, token string) {
	u := *user
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.user = &u
	s.token = token
}

func (s *AuthService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user, or nil.
func (s *AuthService) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *AuthService) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}
