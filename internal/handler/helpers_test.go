package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/devlink/devlink/internal/github"
	"github.com/devlink/devlink/internal/handler"
	"github.com/devlink/devlink/internal/metrics"
	"github.com/devlink/devlink/internal/model"
	"github.com/devlink/devlink/internal/repository"
	"github.com/devlink/devlink/internal/server"
	"github.com/devlink/devlink/internal/service"
	"github.com/devlink/devlink/internal/token"
)

// testAPI is a fully wired router backed by in-memory stores.
type testAPI struct {
	router   http.Handler
	store    *memStore
	repos    *stubRepoLister
	recorder *metrics.InMemoryRecorder
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	codec := token.NewCodec("test-secret", time.Hour)
	store := newMemStore()
	repos := &stubRepoLister{}
	recorder := metrics.NewInMemory()

	accountSvc := service.NewAccountService(store, store, codec, recorder)
	postSvc := service.NewPostService(store, store, recorder)
	profileSvc := service.NewProfileService(store, repos, nil, recorder)

	router := server.NewRouter(server.RouterDeps{
		Logger:   logger,
		Codec:    codec,
		Accounts: handler.NewAccountHandler(accountSvc, logger),
		Posts:    handler.NewPostHandler(postSvc, logger),
		Profiles: handler.NewProfileHandler(profileSvc, logger),
		Health:   handler.NewHealthHandler(nil, nil),
		Metrics:  handler.NewMetricsHandler(recorder),
	})

	return &testAPI{router: router, store: store, repos: repos, recorder: recorder}
}

// do sends a request through the router. A non-empty tok is attached
// as the credential header.
func (a *testAPI) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if tok != "" {
		req.Header.Set("X-Auth-Token", tok)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token.
func (a *testAPI) register(t *testing.T, name, email string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/v1/accounts", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected status 201, got %d: %s", email, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("register returned empty token")
	}
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

// stubRepoLister returns canned repo listings or a canned error.
type stubRepoLister struct {
	repos []github.Repo
	err   error
	calls int
}

func (s *stubRepoLister) ListRepos(_ context.Context, _ string) ([]github.Repo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.repos, nil
}

// memStore is an in-memory implementation of the store interfaces,
// mirroring the repository's error contract.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
	profiles map[string]*model.Profile
	posts    map[string]*model.Post
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*model.Account),
		profiles: make(map[string]*model.Profile),
		posts:    make(map[string]*model.Post),
	}
}

func (m *memStore) CreateAccount(_ context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return repository.ErrEmailTaken
		}
	}
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *memStore) GetAccountByID(_ context.Context, id string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memStore) DeleteAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *memStore) UpsertProfile(_ context.Context, profile *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *profile
	m.profiles[profile.OwnerID] = &cp
	return nil
}

func (m *memStore) GetProfileByOwner(_ context.Context, ownerID string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[ownerID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListProfiles(_ context.Context) ([]*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) UpdateProfile(_ context.Context, profile *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[profile.OwnerID]; !ok {
		return repository.ErrProfileNotFound
	}
	cp := *profile
	m.profiles[profile.OwnerID] = &cp
	return nil
}

func (m *memStore) DeleteProfileByOwner(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, ownerID)
	return nil
}

func (m *memStore) CreatePost(_ context.Context, post *model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *memStore) GetPostByID(_ context.Context, id string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListPosts(_ context.Context) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Post, 0, len(m.posts))
	for _, p := range m.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) UpdatePost(_ context.Context, post *model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[post.ID]; !ok {
		return repository.ErrPostNotFound
	}
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *memStore) DeletePost(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}
