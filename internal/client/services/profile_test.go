package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	user *models.User
}

func (f *fakeSession) IsAuthenticated() bool { return f.user != nil }
func (f *fakeSession) User() *models.User    { return f.user }

const profileJSON = `{"_id":"u1","name":"Ann","username":"ann","email":"ann@example.com","createdAt":"2024-01-15T10:00:00Z"}`

func newProfileHarness(t *testing.T, signedIn bool) (*ProfileService, *fakeAPI) {
	t.Helper()
	api := newFakeAPI(t)
	sess := &fakeSession{}
	if signedIn {
		sess.user = &models.User{ID: "u1", Name: "Ann", Username: "ann"}
	}
	c := client.NewHTTPClient(api.URL, client.TokenFunc(func(context.Context) (string, error) { return "tok", nil }))
	return NewProfileService(c, sess, nil), api
}

func TestProfileFetch_AnonymousDoesNothing(t *testing.T) {
	p, api := newProfileHarness(t, false)

	p.Fetch(context.Background())

	assert.Nil(t, p.Profile())
	assert.False(t, p.Loading())
	assert.Empty(t, p.Err())
	assert.Zero(t, api.TotalHits())
}

func TestProfileFetch_Success(t *testing.T) {
	p, api := newProfileHarness(t, true)
	api.handle(http.MethodGet, "/auth/", http.StatusOK, profileJSON)

	p.Fetch(context.Background())

	got := p.Profile()
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "Ann", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, "ann@example.com", *got.Email)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), got.CreatedAt)
	assert.False(t, p.Loading())
	assert.Empty(t, p.Err())
	assert.Equal(t, "Bearer tok", api.LastAuth())
}

func TestProfileFetch_FailureKeepsPreviousProfile(t *testing.T) {
	p, api := newProfileHarness(t, true)

	var fail atomic.Bool
	api.handleFunc(http.MethodGet, "/auth/", func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"message":"database offline"}`)
			return
		}
		_, _ = io.WriteString(w, profileJSON)
	})

	ctx := context.Background()
	p.Fetch(ctx)
	require.NotNil(t, p.Profile())

	fail.Store(true)
	p.Fetch(ctx)

	assert.Equal(t, "database offline", p.Err())
	require.NotNil(t, p.Profile())
	assert.Equal(t, "Ann", p.Profile().Name)
	assert.False(t, p.Loading())

	fail.Store(false)
	p.Fetch(ctx)
	assert.Empty(t, p.Err(), "a successful fetch clears the error")
}

func TestProfileFetch_LoadingWhileInFlight(t *testing.T) {
	p, api := newProfileHarness(t, true)

	entered := make(chan struct{})
	release := make(chan struct{})
	api.handleFunc(http.MethodGet, "/auth/", func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		_, _ = io.WriteString(w, profileJSON)
	})

	done := make(chan struct{})
	go func() {
		p.Fetch(context.Background())
		close(done)
	}()

	<-entered
	assert.True(t, p.Loading())
	close(release)
	<-done
	assert.False(t, p.Loading())
}

func TestProfileUpdate_MergesWithoutRefetch(t *testing.T) {
	p, api := newProfileHarness(t, true)
	api.handle(http.MethodGet, "/auth/", http.StatusOK, profileJSON)

	bodies := make(chan map[string]any, 1)
	api.handleFunc(http.MethodPut, "/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var sent map[string]any
		_ = json.NewDecoder(r.Body).Decode(&sent)
		bodies <- sent
		assert.Equal(t, "u1", mux.Vars(r)["id"])
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()
	p.Fetch(ctx)

	name, avatar := "Anna", "https://cdn.example.com/a.png"
	ok := p.Update(ctx, models.ProfilePatch{Name: &name, Avatar: &avatar})
	require.True(t, ok)

	assert.Equal(t, map[string]any{"name": "Anna", "avatar": avatar}, <-bodies)
	assert.Equal(t, 1, api.Hits(http.MethodGet, "/auth/"))

	got := p.Profile()
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, "ann", got.Username)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, avatar, *got.Avatar)
	assert.Empty(t, p.Err())
}

func TestProfileUpdate_UsesSessionUserBeforeFetch(t *testing.T) {
	p, api := newProfileHarness(t, true)
	api.handle(http.MethodPut, "/users/{id}", http.StatusOK, ``)

	name := "Anna"
	require.True(t, p.Update(context.Background(), models.ProfilePatch{Name: &name}))
	assert.Equal(t, 1, api.Hits(http.MethodPut, "/users/{id}"))
	assert.Nil(t, p.Profile())
}

func TestProfileUpdate_FailureKeepsProfile(t *testing.T) {
	p, api := newProfileHarness(t, true)
	api.handle(http.MethodGet, "/auth/", http.StatusOK, profileJSON)
	api.handle(http.MethodPut, "/users/{id}", http.StatusBadRequest, `{"message":"username already taken"}`)

	ctx := context.Background()
	p.Fetch(ctx)

	username := "bob"
	assert.False(t, p.Update(ctx, models.ProfilePatch{Username: &username}))
	assert.Equal(t, "username already taken", p.Err())
	assert.Equal(t, "ann", p.Profile().Username)
}

func TestProfileUpdate_Anonymous(t *testing.T) {
	p, api := newProfileHarness(t, false)

	name := "x"
	assert.False(t, p.Update(context.Background(), models.ProfilePatch{Name: &name}))
	assert.Equal(t, ErrNotAuthenticated.Error(), p.Err())
	assert.Zero(t, api.TotalHits())
}

func TestProfileUpdate_EmptyPatchSendsNothing(t *testing.T) {
	p, api := newProfileHarness(t, true)

	assert.True(t, p.Update(context.Background(), models.ProfilePatch{}))
	assert.Zero(t, api.TotalHits())
}

func TestProfile_UserSwitchDropsPreviousProfile(t *testing.T) {
	p, api := newProfileHarness(t, true)
	sess := p.session.(*fakeSession)
	api.handle(http.MethodGet, "/auth/", http.StatusOK, profileJSON)

	var putFor atomic.Value
	api.handleFunc(http.MethodPut, "/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		putFor.Store(mux.Vars(r)["id"])
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()
	p.Fetch(ctx)
	require.NotNil(t, p.Profile())

	sess.user = nil
	p.Fetch(ctx)
	assert.Nil(t, p.Profile(), "signed out")
	assert.Empty(t, p.Err())
	assert.Equal(t, 1, api.Hits(http.MethodGet, "/auth/"))

	sess.user = &models.User{ID: "u2", Name: "Bea", Username: "bea"}
	name := "Bee"
	require.True(t, p.Update(ctx, models.ProfilePatch{Name: &name}))
	assert.Equal(t, "u2", putFor.Load())
	assert.Nil(t, p.Profile())
}

func TestProfile_SignInAsOtherUserWithoutLogoutStep(t *testing.T) {
	p, api := newProfileHarness(t, true)
	sess := p.session.(*fakeSession)
	api.handle(http.MethodGet, "/auth/", http.StatusOK, profileJSON)
	api.handle(http.MethodPut, "/users/{id}", http.StatusOK, ``)

	ctx := context.Background()
	p.Fetch(ctx)
	require.NotNil(t, p.Profile())

	sess.user = &models.User{ID: "u2", Name: "Bea", Username: "bea"}
	assert.Nil(t, p.Profile())

	name := "Bee"
	require.True(t, p.Update(ctx, models.ProfilePatch{Name: &name}))
	assert.Nil(t, p.Profile(), "a patch for u2 never lands on u1's profile")
}
