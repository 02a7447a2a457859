package service

import (
	"context"
	"sort"
	"sync"

	"github.com/devlink/devlink/internal/model"
	"github.com/devlink/devlink/internal/repository"
)

// memStore is an in-memory implementation of the store interfaces,
// mirroring the repository's error contract.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
	profiles map[string]*model.Profile // keyed by owner id
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
