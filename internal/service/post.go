package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/devlink/devlink/internal/auth"
	"github.com/devlink/devlink/internal/collection"
	"github.com/devlink/devlink/internal/metrics"
	"github.com/devlink/devlink/internal/model"
	"github.com/devlink/devlink/internal/repository"
)

// PostService handles post and sub-entry mutations. Mutations are
// load-modify-store without a transaction; two concurrent writers to
// the same post can lose an update. UpdatePostGuarded on the
// repository is the opt-in optimistic alternative.
type PostService struct {
	posts    PostStore
	accounts AccountStore
	metrics  metrics.Recorder
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore, accounts AccountStore, recorder metrics.Recorder) *PostService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PostService{
		posts:    posts,
		accounts: accounts,
		metrics:  recorder,
	}
}

func likeKey(l model.Like) string { return l.UserID }

func commentKey(c model.Comment) string { return c.ID }

// Create makes a new post for the authenticated caller, snapshotting
// the author's name and avatar at creation time. Later account edits
// do not touch existing posts.
func (s *PostService) Create(ctx context.Context, text string) (*model.Post, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetAccountByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	now := time.Now().UTC()
	post := &model.Post{
		ID:           ulid.Make().String(),
		AuthorID:     account.ID,
		Text:         text,
		AuthorName:   account.Name,
		AuthorAvatar: account.AvatarURL,
		Likes:        []model.Like{},
		Comments:     []model.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.metrics.IncPostCreated()

	return post, nil
}

// Get returns one post by id.
func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	return s.load(ctx, id)
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Delete removes a post. Only the post's author may delete it.
func (s *PostService) Delete(ctx context.Context, id string) error {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}

	post, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.RequireOwner(identity, post.AuthorID); err != nil {
		return err
	}

	if err := s.posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.metrics.IncPostDeleted()

	return nil
}

// Like records the caller's like. A second like from the same user
// fails with ErrAlreadyLiked rather than succeeding silently.
func (s *PostService) Like(ctx context.Context, postID string) (*model.Post, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	likes, alreadyPresent := collection.AddUnique(post.Likes, likeKey, model.Like{UserID: identity.UserID})
	if alreadyPresent {
		return nil, ErrAlreadyLiked
	}
	post.Likes = likes

	if err := s.save(ctx, post); err != nil {
		return nil, err
	}

	s.metrics.IncPostLiked()

	return post, nil
}

// Unlike removes the caller's like; fails with ErrNotLiked when the
// caller has not liked the post.
func (s *PostService) Unlike(ctx context.Context, postID string) (*model.Post, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	likes, err := collection.RemoveByKey(post.Likes, likeKey, identity.UserID)
	if err != nil {
		return nil, ErrNotLiked
	}
	post.Likes = likes

	if err := s.save(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// AddComment prepends a comment by the authenticated caller, with
// author name and avatar snapshotted like post creation.
func (s *PostService) AddComment(ctx context.Context, postID, text string) (*model.Post, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetAccountByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:           ulid.Make().String(),
		AuthorID:     account.ID,
		Text:         text,
		AuthorName:   account.Name,
		AuthorAvatar: account.AvatarURL,
		CreatedAt:    time.Now().UTC(),
	}
	post.Comments = collection.InsertFront(post.Comments, comment)

	if err := s.save(ctx, post); err != nil {
		return nil, err
	}

	s.metrics.IncCommentAdded()

	return post, nil
}

// DeleteComment removes a comment by its id. Only the comment's
// author may remove it; the check runs against the located entry, not
// the requesting identity's own comments.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID string) (*model.Post, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	var target *model.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, ErrCommentNotFound
	}

	if err := auth.RequireOwner(identity, target.AuthorID); err != nil {
		return nil, err
	}

	comments, err := collection.RemoveByKey(post.Comments, commentKey, commentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}
	post.Comments = comments

	if err := s.save(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) load(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostService) save(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now().UTC()
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}
