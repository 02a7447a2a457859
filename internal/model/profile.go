package model

import "time"

// Experience is a sub-entry of a profile's experience sequence.
// Entries are kept most-recent-first by insertion order, not by date.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Profile is a developer profile, exactly one per account.
type Profile struct {
	ID             string            `json:"id"`
	OwnerID        string            `json:"owner_id"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Status         string            `json:"status"`
	Bio            string            `json:"bio,omitempty"`
	GithubUsername string            `json:"github_username,omitempty"`
	Skills         []string          `json:"skills"`
	Experience     []Experience      `json:"experience"`
	Social         map[string]string `json:"social,omitempty"`
	Version        int64             `json:"-"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
