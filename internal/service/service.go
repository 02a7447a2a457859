// Package service provides business logic for the application. Every
// mutating operation follows the same template: resolve the caller's
// identity from the request context, load the resource, authorize,
// apply the mutation, persist.
package service

import (
	"context"
	"errors"

	"github.com/devlink/devlink/internal/model"
)

// Service errors. Authentication and ownership failures come from the
// auth package and pass through unchanged.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrExperienceNotFound = errors.New("experience entry not found")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post not liked")
	ErrGithubUserNotFound = errors.New("github user not found")
	ErrGithubUnavailable  = errors.New("github unavailable")
)

// AccountStore is the persistence contract for accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// ProfileStore is the persistence contract for profiles.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, profile *model.Profile) error
	GetProfileByOwner(ctx context.Context, ownerID string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	DeleteProfileByOwner(ctx context.Context, ownerID string) error
}

// PostStore is the persistence contract for posts.
type PostStore interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id string) error
}
