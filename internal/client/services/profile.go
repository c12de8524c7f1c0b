package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/dmitrijs2005/tripcart/internal/logging"
)

// Session is the read side of the session manager other services need.
type Session interface {
	IsAuthenticated() bool
	User() *models.User
}

// ProfileService keeps the signed-in user's extended profile, a loading
// flag and the last error message. Its operations report failure through
// Err instead of returning errors.
type ProfileService struct {
	client  client.Client
	session Session
	log     logging.Logger

	mu      sync.Mutex
	profile *models.Profile
	loading bool
	errMsg  string
}

func NewProfileService(c client.Client, session Session, logger logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &ProfileService{client: c, session: session, log: logger.With("component", "profile")}
}

// Fetch replaces the profile with the server's copy. Without a session the
// profile and error are cleared and nothing is sent. On failure the previous
// profile is kept and Err is set.
func (p *ProfileService) Fetch(ctx context.Context) {
	if p.sessionUserID() == "" {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	prof, err := p.client.CurrentProfile(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.log.Warn(ctx, "fetch profile", "error", err)
		p.errMsg = ErrorMessage(err)
		return
	}
	p.profile = prof
	p.errMsg = ""
}

// Update sends the changed fields for the signed-in user and, once the server
// accepts them, merges them into the local profile without re-fetching. A
// rejected update leaves the local profile as it was and sets Err.
func (p *ProfileService) Update(ctx context.Context, patch models.ProfilePatch) bool {
	userID := p.sessionUserID()
	if userID == "" {
		p.setErr(ErrNotAuthenticated.Error())
		return false
	}
	if patch.IsEmpty() {
		return true
	}

	if err := p.client.UpdateProfile(ctx, userID, patch); err != nil {
		p.log.Warn(ctx, "update profile", "error", err)
		p.setErr(ErrorMessage(err))
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profile != nil && p.profile.ID == userID {
		merged := p.profile.Apply(patch)
		p.profile = &merged
	}
	p.errMsg = ""
	return true
}

// sessionUserID returns the signed-in user's ID, or "" when anonymous. A
// cached profile or error that belongs to anyone else is dropped.
func (p *ProfileService) sessionUserID() string {
	id := ""
	if p.session.IsAuthenticated() {
		if u := p.session.User(); u != nil {
			id = u.ID
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if id == "" || (p.profile != nil && p.profile.ID != id) {
		p.profile = nil
		p.errMsg = ""
	}
	return id
}

func (p *ProfileService) setErr(msg string) {
	p.mu.Lock()
	p.errMsg = msg
	p.mu.Unlock()
}

// Profile returns a copy of the signed-in user's profile, or nil before the
// first successful Fetch of this session.
func (p *ProfileService) Profile() *models.Profile {
	p.sessionUserID()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profile == nil {
		return nil
	}
	cp := *p.profile
	return &cp
}

func (p *ProfileService) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err is the message of the last failure, or "".
func (p *ProfileService) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}
