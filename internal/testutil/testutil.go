// Package testutil provides helpers for integration tests that need a
// real database or Redis instance.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/devlink/devlink/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420421

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrationOrder lists migration basenames in apply order. Down
// migrations run in reverse so foreign keys drop cleanly.
var migrationOrder = []string{
	"000001_accounts",
	"000002_profiles",
	"000003_posts",
}

// ResetSchema drops and recreates the full schema for tests.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrationOrder) - 1; i >= 0; i-- {
		if err := applySQL(ctx, pool, filepath.Join(root, "migrations", migrationOrder[i]+".down.sql")); err != nil {
			return err
		}
	}
	for _, name := range migrationOrder {
		if err := applySQL(ctx, pool, filepath.Join(root, "migrations", name+".up.sql")); err != nil {
			return err
		}
	}

	return nil
}

func applySQL(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", filepath.Base(path), err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", filepath.Base(path), err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestAccount creates a test account with sensible defaults.
func NewTestAccount(t testing.TB, email string) *model.Account {
	t.Helper()
	return &model.Account{
		ID:           ulid.Make().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		AvatarURL:    "https://www.gravatar.com/avatar/test",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestPost creates a test post authored by the given account.
func NewTestPost(t testing.TB, author *model.Account, text string) *model.Post {
	t.Helper()
	now := time.Now().UTC()
	return &model.Post{
		ID:           ulid.Make().String(),
		AuthorID:     author.ID,
		Text:         text,
		AuthorName:   author.Name,
		AuthorAvatar: author.AvatarURL,
		Likes:        []model.Like{},
		Comments:     []model.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestProfile creates a test profile owned by the given account.
func NewTestProfile(t testing.TB, owner *model.Account) *model.Profile {
	t.Helper()
	now := time.Now().UTC()
	return &model.Profile{
		ID:         ulid.Make().String(),
		OwnerID:    owner.ID,
		Status:     "Developer",
		Skills:     []string{"Go", "PostgreSQL"},
		Experience: []model.Experience{},
		Social:     map[string]string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
