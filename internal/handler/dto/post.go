package dto

import "strings"

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Text string `json:"text"`
}

// Validate runs the pre-core field checks.
func (r *CreatePostRequest) Validate() []FieldError {
	if strings.TrimSpace(r.Text) == "" {
		return []FieldError{{Field: "text", Message: "Text is required"}}
	}
	return nil
}

// AddCommentRequest represents the request body for adding a comment.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// Validate runs the pre-core field checks.
func (r *AddCommentRequest) Validate() []FieldError {
	if strings.TrimSpace(r.Text) == "" {
		return []FieldError{{Field: "text", Message: "Text is required"}}
	}
	return nil
}
