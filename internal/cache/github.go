package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/devlink/devlink/internal/github"
)

const (
	// githubCachePrefix is the Redis key prefix for repo listings.
	githubCachePrefix = "github:repos:"
	// githubCacheTTL bounds how stale a cached listing may be.
	githubCacheTTL = 10 * time.Minute
)

// ErrCacheMiss indicates the key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetGithubRepos retrieves a cached repo listing for a username.
func (c *Cache) GetGithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	data, err := c.client.Get(ctx, githubCachePrefix+username).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var repos []github.Repo
	if err := json.Unmarshal(data, &repos); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, ErrCacheMiss
	}

	return repos, nil
}

// SetGithubRepos caches a repo listing for a username.
func (c *Cache) SetGithubRepos(ctx context.Context, username string, repos []github.Repo) error {
	data, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("marshal repos: %w", err)
	}

	return c.client.Set(ctx, githubCachePrefix+username, data, githubCacheTTL).Err()
}
