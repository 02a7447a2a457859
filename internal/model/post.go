package model

import "time"

// Like marks that a user liked a post. Likes form a set keyed by UserID
// but are stored as an ordered sequence because display order matters.
type Like struct {
	UserID string `json:"user_id"`
}

// Comment is a sub-entry of a post's comment sequence, newest first.
// Author name and avatar are snapshotted at creation time.
type Comment struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

// Post is a user-authored post with nested likes and comments.
// AuthorName and AuthorAvatar are snapshots taken when the post is
// created; later account edits do not propagate to existing posts.
type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	Version      int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LikedBy reports whether userID is present in the post's like sequence.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
