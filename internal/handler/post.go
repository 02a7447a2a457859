package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devlink/devlink/internal/auth"
	"github.com/devlink/devlink/internal/handler/dto"
	"github.com/devlink/devlink/internal/service"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	svc    *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.svc.Create(r.Context(), req.Text)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_created", "post_id", post.ID)

	writeJSON(w, http.StatusCreated, post)
}

// List handles GET /api/v1/posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/v1/posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Post ID is required")
		return
	}

	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/v1/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Post ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_deleted", "post_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Like handles PUT /api/v1/posts/{id}/like.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Post ID is required")
		return
	}

	post, err := h.svc.Like(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post.Likes)
}

// Unlike handles PUT /api/v1/posts/{id}/unlike.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Post ID is required")
		return
	}

	post, err := h.svc.Unlike(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post.Likes)
}

// AddComment handles POST /api/v1/posts/{id}/comments.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Post ID is required")
		return
	}

	var req dto.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.svc.AddComment(r.Context(), id, req.Text)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("comment_added", "post_id", id)

	writeJSON(w, http.StatusCreated, post.Comments)
}

// DeleteComment handles DELETE /api/v1/posts/{id}/comments/{commentID}.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "commentID")
	if id == "" || commentID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Post and comment IDs are required")
		return
	}

	post, err := h.svc.DeleteComment(r.Context(), id, commentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("comment_deleted", "post_id", id, "comment_id", commentID)

	writeJSON(w, http.StatusOK, post.Comments)
}

// handleServiceError maps service errors to HTTP responses.
func (h *PostHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
	case errors.Is(err, service.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment not found")
	case errors.Is(err, service.ErrAlreadyLiked):
		writeError(w, http.StatusConflict, "ALREADY_LIKED", "Post already liked")
	case errors.Is(err, service.ErrNotLiked):
		writeError(w, http.StatusConflict, "NOT_LIKED", "Post has not been liked yet")
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not authorized for this resource")
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or missing credential")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
