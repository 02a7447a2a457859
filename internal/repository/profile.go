package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/devlink/devlink/internal/model"
)

// ErrProfileNotFound indicates no profile exists for the owner.
var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, owner_id, company, website, location, status, bio,
	github_username, skills, experience, social, version, created_at, updated_at`

// UpsertProfile inserts the profile or, when the owner already has
// one, replaces its top-level fields. The experience sequence is left
// untouched on conflict; it is mutated only through UpdateProfile.
func (r *Repository) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	experience, social, err := marshalProfileCollections(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (id, owner_id, company, website, location, status, bio,
			github_username, skills, experience, social, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (owner_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			version = profiles.version + 1,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query,
		profile.ID,
		profile.OwnerID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		profile.Bio,
		profile.GithubUsername,
		pq.Array(profile.Skills),
		experience,
		social,
		profile.Version,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetProfileByOwner retrieves the profile owned by ownerID.
func (r *Repository) GetProfileByOwner(ctx context.Context, ownerID string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by owner: %w", err)
	}

	return profile, nil
}

// ListProfiles returns all profiles, newest first.
func (r *Repository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// UpdateProfile persists a mutated profile, last write wins.
func (r *Repository) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	experience, social, err := marshalProfileCollections(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET company = $2, website = $3, location = $4, status = $5, bio = $6,
			github_username = $7, skills = $8, experience = $9, social = $10,
			version = version + 1, updated_at = $11
		WHERE owner_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		profile.OwnerID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		profile.Bio,
		profile.GithubUsername,
		pq.Array(profile.Skills),
		experience,
		social,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// UpdateProfileGuarded is the optimistic variant of UpdateProfile; see
// UpdatePostGuarded.
func (r *Repository) UpdateProfileGuarded(ctx context.Context, profile *model.Profile) error {
	experience, social, err := marshalProfileCollections(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET company = $3, website = $4, location = $5, status = $6, bio = $7,
			github_username = $8, skills = $9, experience = $10, social = $11,
			version = version + 1, updated_at = $12
		WHERE owner_id = $1 AND version = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		profile.OwnerID,
		profile.Version,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		profile.Bio,
		profile.GithubUsername,
		pq.Array(profile.Skills),
		experience,
		social,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetProfileByOwner(ctx, profile.OwnerID); getErr != nil {
			return getErr
		}
		return ErrStaleVersion
	}

	return nil
}

// DeleteProfileByOwner removes the owner's profile. Missing profile is
// not an error: account deletion cascades here and must be idempotent.
func (r *Repository) DeleteProfileByOwner(ctx context.Context, ownerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func marshalProfileCollections(profile *model.Profile) (experience, social []byte, err error) {
	if profile.Experience == nil {
		profile.Experience = []model.Experience{}
	}
	if profile.Social == nil {
		profile.Social = map[string]string{}
	}

	experience, err = json.Marshal(profile.Experience)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal experience: %w", err)
	}
	social, err = json.Marshal(profile.Social)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal social: %w", err)
	}
	return experience, social, nil
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var (
		profile    model.Profile
		experience []byte
		social     []byte
	)

	err := row.Scan(
		&profile.ID,
		&profile.OwnerID,
		&profile.Company,
		&profile.Website,
		&profile.Location,
		&profile.Status,
		&profile.Bio,
		&profile.GithubUsername,
		pq.Array(&profile.Skills),
		&experience,
		&social,
		&profile.Version,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(experience, &profile.Experience); err != nil {
		return nil, fmt.Errorf("unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(social, &profile.Social); err != nil {
		return nil, fmt.Errorf("unmarshal social: %w", err)
	}

	return &profile, nil
}
