package client

import (
	"context"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
)

// AuthResult is a successful login or registration. User is nil when the
// server only returned a token.
type AuthResult struct {
	Token string
	User  *models.User
}

type Client interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, name, username, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	CurrentProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) error

	SearchUsers(ctx context.Context, username string) ([]models.User, error)
	DeleteAccount(ctx context.Context) error

	ListGroups(ctx context.Context) ([]models.Group, error)
	CreateGroup(ctx context.Context, name, password string) (*models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
	SearchGroups(ctx context.Context, query string) ([]models.Group, error)
	JoinGroup(ctx context.Context, groupID, password string) error
	LeaveGroup(ctx context.Context, groupID string) error
	AddMember(ctx context.Context, groupID, memberID string) error
	RemoveMember(ctx context.Context, groupID, memberID string) error
}

// TokenSource yields the bearer token to send, or "" for none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type tokenKey struct{}

// WithToken returns a context whose requests authenticate with token instead
// of asking the client's TokenSource. It is used to try a credential before
// committing it to the session.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }
