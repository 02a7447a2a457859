package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devlink/devlink/internal/model"
)

// ErrPostNotFound indicates the post id does not exist.
var ErrPostNotFound = errors.New("post not found")

// CreatePost inserts a new post with empty like and comment sequences.
func (r *Repository) CreatePost(ctx context.Context, post *model.Post) error {
	likes, comments, err := marshalPostCollections(post)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (id, author_id, text, author_name, author_avatar,
			likes, comments, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.pool.Exec(ctx, query,
		post.ID,
		post.AuthorID,
		post.Text,
		post.AuthorName,
		post.AuthorAvatar,
		likes,
		comments,
		post.Version,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPostByID retrieves a post with its nested collections.
func (r *Repository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
		SELECT id, author_id, text, author_name, author_avatar,
			likes, comments, version, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// ListPosts returns all posts, newest first.
func (r *Repository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	query := `
		SELECT id, author_id, text, author_name, author_avatar,
			likes, comments, version, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// UpdatePost persists a mutated post, last write wins. The version
// column is bumped so concurrent readers can observe churn.
func (r *Repository) UpdatePost(ctx context.Context, post *model.Post) error {
	likes, comments, err := marshalPostCollections(post)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET likes = $2, comments = $3, version = version + 1, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, post.ID, likes, comments, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// UpdatePostGuarded is the optimistic variant of UpdatePost: it only
// applies when the stored version still equals post.Version, otherwise
// it returns ErrStaleVersion.
func (r *Repository) UpdatePostGuarded(ctx context.Context, post *model.Post) error {
	likes, comments, err := marshalPostCollections(post)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET likes = $3, comments = $4, version = version + 1, updated_at = $5
		WHERE id = $1 AND version = $2
	`

	tag, err := r.pool.Exec(ctx, query, post.ID, post.Version, likes, comments, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetPostByID(ctx, post.ID); getErr != nil {
			return getErr
		}
		return ErrStaleVersion
	}

	return nil
}

// DeletePost removes a post row.
func (r *Repository) DeletePost(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func marshalPostCollections(post *model.Post) (likes, comments []byte, err error) {
	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	likes, err = json.Marshal(post.Likes)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal likes: %w", err)
	}
	comments, err = json.Marshal(post.Comments)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal comments: %w", err)
	}
	return likes, comments, nil
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		post     model.Post
		likes    []byte
		comments []byte
	)

	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Text,
		&post.AuthorName,
		&post.AuthorAvatar,
		&likes,
		&comments,
		&post.Version,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(likes, &post.Likes); err != nil {
		return nil, fmt.Errorf("unmarshal likes: %w", err)
	}
	if err := json.Unmarshal(comments, &post.Comments); err != nil {
		return nil, fmt.Errorf("unmarshal comments: %w", err)
	}

	return &post, nil
}
