package dto

import (
	"strings"
	"time"
)

// UpsertProfileRequest represents the request body for creating or
// updating the caller's profile. Pointer fields distinguish "leave the
// stored value alone" (absent) from "overwrite, possibly with empty"
// (present).
type UpsertProfileRequest struct {
	Status         string            `json:"status"`
	Skills         []string          `json:"skills"`
	Company        *string           `json:"company"`
	Website        *string           `json:"website"`
	Location       *string           `json:"location"`
	Bio            *string           `json:"bio"`
	GithubUsername *string           `json:"github_username"`
	Social         map[string]string `json:"social"`
}

// Validate runs the pre-core field checks.
func (r *UpsertProfileRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Status) == "" {
		errs = append(errs, FieldError{Field: "status", Message: "Status is required"})
	}
	if len(r.Skills) == 0 {
		errs = append(errs, FieldError{Field: "skills", Message: "Skills is required"})
	}
	return errs
}

// AddExperienceRequest represents the request body for adding an
// experience entry to the caller's profile.
type AddExperienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// Validate runs the pre-core field checks.
func (r *AddExperienceRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(r.Company) == "" {
		errs = append(errs, FieldError{Field: "company", Message: "Company is required"})
	}
	if r.From.IsZero() {
		errs = append(errs, FieldError{Field: "from", Message: "From date is required"})
	}
	return errs
}
