package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
	"github.com/dmitrijs2005/tripcart/internal/client/repositories/metadata"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// ---- fake remote API ----

type fakeAPI struct {
	*httptest.Server
	router *mux.Router

	mu   sync.Mutex
	hits map[string]int
	auth []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{router: mux.NewRouter(), hits: map[string]int{}}
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tpl, _ := mux.CurrentRoute(r).GetPathTemplate()
			f.mu.Lock()
			f.hits[r.Method+" "+tpl]++
			f.auth = append(f.auth, r.Header.Get("Authorization"))
			f.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	f.Server = httptest.NewServer(f.router)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) handle(method, path string, status int, body string) {
	f.handleFunc(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeAPI) handleFunc(method, path string, h http.HandlerFunc) {
	f.router.HandleFunc(path, h).Methods(method)
}

func (f *fakeAPI) Hits(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

func (f *fakeAPI) TotalHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.hits {
		n += v
	}
	return n
}

func (f *fakeAPI) LastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.auth) == 0 {
		return ""
	}
	return f.auth[len(f.auth)-1]
}

// ---- session harness ----

type harness struct {
	api     *fakeAPI
	store   metadata.Repository
	client  *client.HTTPClient
	session *AuthService
}

// newHarness wires an HTTPClient to a fresh fake API and builds the session
// manager over store. The client reads its token from store, as the app
// does. Seed store before calling it.
func newHarness(t *testing.T, store metadata.Repository) *harness {
	t.Helper()
	h := &harness{api: newFakeAPI(t), store: store}
	h.client = client.NewHTTPClient(h.api.URL, client.TokenFunc(func(ctx context.Context) (string, error) {
		tok, err := store.Get(ctx, metadata.KeyToken)
		return string(tok), err
	}))
	h.session = NewAuthService(context.Background(), h.client, store, nil)
	return h
}

func storedToken(t *testing.T, store metadata.Repository) string {
	t.Helper()
	v, err := store.Get(context.Background(), metadata.KeyToken)
	require.NoError(t, err)
	return string(v)
}

func seed(t *testing.T, store metadata.Repository, key, value string) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), key, []byte(value)))
}

// ---- failing store ----

type failingStore struct {
	metadata.Repository
	getErr error
	setErr error
	delErr error
	clrErr error
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.Repository.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.Repository.Set(ctx, key, value)
}

func (s *failingStore) Delete(ctx context.Context, key string) error {
	if s.delErr != nil {
		return s.delErr
	}
	return s.Repository.Delete(ctx, key)
}

func (s *failingStore) Clear(ctx context.Context) error {
	if s.clrErr != nil {
		return s.clrErr
	}
	return s.Repository.Clear(ctx)
}

var errStore = errors.New("store unavailable")

const (
	userAJSON  = `{"id":"1","name":"A","username":"a"}`
	loginAJSON = `{"token":"abc","user":{"id":"1","name":"A","username":"a"}}`
)
