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

// ProfileHandler handles HTTP requests for profile operations.
type ProfileHandler struct {
	svc    *service.ProfileService
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		svc:    svc,
		logger: logger,
	}
}

// Upsert handles POST /api/v1/profiles.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	profile, err := h.svc.Upsert(r.Context(), service.UpsertProfileInput{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.Social,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_upserted", "profile_id", profile.ID)

	writeJSON(w, http.StatusOK, profile)
}

// Me handles GET /api/v1/profiles/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Me(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// List handles GET /api/v1/profiles.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// ByUser handles GET /api/v1/profiles/user/{userID}.
func (h *ProfileHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "User ID is required")
		return
	}

	profile, err := h.svc.ByUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// AddExperience handles PUT /api/v1/profiles/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	var req dto.AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	profile, err := h.svc.AddExperience(r.Context(), service.AddExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("experience_added", "profile_id", profile.ID)

	writeJSON(w, http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/v1/profiles/experience/{expID}.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	expID := chi.URLParam(r, "expID")
	if expID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Experience ID is required")
		return
	}

	profile, err := h.svc.RemoveExperience(r.Context(), expID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("experience_removed", "profile_id", profile.ID, "experience_id", expID)

	writeJSON(w, http.StatusOK, profile)
}

// GithubRepos handles GET /api/v1/profiles/github/{username}.
func (h *ProfileHandler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "GitHub username is required")
		return
	}

	repos, err := h.svc.GithubRepos(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}

// handleServiceError maps service errors to HTTP responses.
func (h *ProfileHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
	case errors.Is(err, service.ErrExperienceNotFound):
		writeError(w, http.StatusNotFound, "EXPERIENCE_NOT_FOUND", "Experience entry not found")
	case errors.Is(err, service.ErrGithubUserNotFound):
		writeError(w, http.StatusNotFound, "GITHUB_USER_NOT_FOUND", "GitHub user not found")
	case errors.Is(err, service.ErrGithubUnavailable):
		writeError(w, http.StatusBadGateway, "GITHUB_UNAVAILABLE", "GitHub is unavailable")
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not authorized for this resource")
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or missing credential")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
