// Package model defines domain entities for the application.
package model

import "time"

// Account represents a registered user of the platform.
// PasswordHash is the argon2id PHC string and must never be serialized.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}
