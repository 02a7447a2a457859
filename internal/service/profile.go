package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/devlink/devlink/internal/auth"
	"github.com/devlink/devlink/internal/collection"
	"github.com/devlink/devlink/internal/github"
	"github.com/devlink/devlink/internal/metrics"
	"github.com/devlink/devlink/internal/model"
	"github.com/devlink/devlink/internal/repository"
)

// RepoLister fetches a user's public repository listing.
type RepoLister interface {
	ListRepos(ctx context.Context, username string) ([]github.Repo, error)
}

// RepoCache caches repository listings. Implemented by *cache.Cache.
type RepoCache interface {
	GetGithubRepos(ctx context.Context, username string) ([]github.Repo, error)
	SetGithubRepos(ctx context.Context, username string, repos []github.Repo) error
}

// ProfileService handles profile and experience mutations plus the
// best-effort GitHub repo listing.
type ProfileService struct {
	profiles  ProfileStore
	repos     RepoLister
	repoCache RepoCache
	metrics   metrics.Recorder
}

// NewProfileService creates a new ProfileService. repoCache may be nil
// to disable caching of repo listings.
func NewProfileService(profiles ProfileStore, repos RepoLister, repoCache RepoCache, recorder metrics.Recorder) *ProfileService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProfileService{
		profiles:  profiles,
		repos:     repos,
		repoCache: repoCache,
		metrics:   recorder,
	}
}

// UpsertProfileInput defines input for creating or updating the
// caller's profile. Pointer fields distinguish "not provided" (nil,
// keep the stored value) from an explicit value, including the empty
// string; there is no falsy-means-absent merging.
type UpsertProfileInput struct {
	Status         string
	Skills         []string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string
	Social         map[string]string
}

// Upsert creates or updates the caller's profile. The profile is
// keyed 1:1 to the identity, so the operation is owner-only by
// construction.
func (s *ProfileService) Upsert(ctx context.Context, input UpsertProfileInput) (*model.Profile, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	profile, err := s.profiles.GetProfileByOwner(ctx, identity.UserID)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		profile = &model.Profile{
			ID:         ulid.Make().String(),
			OwnerID:    identity.UserID,
			Experience: []model.Experience{},
			CreatedAt:  now,
		}
	case err != nil:
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile.Status = input.Status
	profile.Skills = input.Skills
	if input.Company != nil {
		profile.Company = *input.Company
	}
	if input.Website != nil {
		profile.Website = *input.Website
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.GithubUsername != nil {
		profile.GithubUsername = *input.GithubUsername
	}
	if input.Social != nil {
		profile.Social = input.Social
	}
	profile.UpdatedAt = now

	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return profile, nil
}

// Me returns the caller's own profile.
func (s *ProfileService) Me(ctx context.Context) (*model.Profile, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, identity.UserID)
}

// ByUser returns the profile owned by userID.
func (s *ProfileService) ByUser(ctx context.Context, userID string) (*model.Profile, error) {
	return s.load(ctx, userID)
}

// List returns all profiles, newest first.
func (s *ProfileService) List(ctx context.Context) ([]*model.Profile, error) {
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// AddExperienceInput defines input for adding an experience entry.
type AddExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience prepends an experience entry to the caller's profile.
// Entries stay most-recent-first by insertion, not by date.
func (s *ProfileService) AddExperience(ctx context.Context, input AddExperienceInput) (*model.Profile, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	entry := model.Experience{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	profile.Experience = collection.InsertFront(profile.Experience, entry)

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// RemoveExperience removes an experience entry by id from the
// caller's own profile. A missing id fails with
// ErrExperienceNotFound; it never panics on an absent entry.
func (s *ProfileService) RemoveExperience(ctx context.Context, experienceID string) (*model.Profile, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	experience, err := collection.RemoveByKey(profile.Experience,
		func(e model.Experience) string { return e.ID }, experienceID)
	if err != nil {
		return nil, ErrExperienceNotFound
	}
	profile.Experience = experience

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GithubRepos returns the user's public repos, cache-first. The fetch
// is best-effort: failures surface as typed errors for the handler to
// degrade on, never as a crash.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	if s.repoCache != nil {
		if repos, err := s.repoCache.GetGithubRepos(ctx, username); err == nil {
			s.metrics.IncGithubCacheHit()
			return repos, nil
		}
		s.metrics.IncGithubCacheMiss()
	}

	start := time.Now()
	repos, err := s.repos.ListRepos(ctx, username)
	s.metrics.ObserveGithubFetchDuration(time.Since(start))

	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			return nil, ErrGithubUserNotFound
		}
		return nil, ErrGithubUnavailable
	}

	if s.repoCache != nil {
		// Best effort; a failed backfill only costs a refetch.
		_ = s.repoCache.SetGithubRepos(ctx, username, repos)
	}

	return repos, nil
}

func (s *ProfileService) load(ctx context.Context, ownerID string) (*model.Profile, error) {
	profile, err := s.profiles.GetProfileByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) save(ctx context.Context, profile *model.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
