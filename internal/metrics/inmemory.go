package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AccountsRegistered    uint64
	LoginsSucceeded       uint64
	LoginsFailed          uint64
	PostsCreated          uint64
	PostsDeleted          uint64
	PostsLiked            uint64
	CommentsAdded         uint64
	GithubCacheHits       uint64
	GithubCacheMisses     uint64
	GithubFetchCount      uint64
	GithubFetchTotalNs    int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	accountsRegistered uint64
	loginsSucceeded    uint64
	loginsFailed       uint64
	postsCreated       uint64
	postsDeleted       uint64
	postsLiked         uint64
	commentsAdded      uint64
	githubCacheHits    uint64
	githubCacheMisses  uint64
	githubFetchCount   uint64
	githubFetchTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		AccountsRegistered: atomic.LoadUint64(&m.accountsRegistered),
		LoginsSucceeded:    atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:       atomic.LoadUint64(&m.loginsFailed),
		PostsCreated:       atomic.LoadUint64(&m.postsCreated),
		PostsDeleted:       atomic.LoadUint64(&m.postsDeleted),
		PostsLiked:         atomic.LoadUint64(&m.postsLiked),
		CommentsAdded:      atomic.LoadUint64(&m.commentsAdded),
		GithubCacheHits:    atomic.LoadUint64(&m.githubCacheHits),
		GithubCacheMisses:  atomic.LoadUint64(&m.githubCacheMisses),
		GithubFetchCount:   atomic.LoadUint64(&m.githubFetchCount),
		GithubFetchTotalNs: atomic.LoadInt64(&m.githubFetchTotalNs),
	}
}

// IncAccountRegistered increments the registration counter.
func (m *InMemoryRecorder) IncAccountRegistered() {
	atomic.AddUint64(&m.accountsRegistered, 1)
}

// IncLoginSucceeded increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSucceeded() {
	atomic.AddUint64(&m.loginsSucceeded, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncPostCreated increments the post created counter.
func (m *InMemoryRecorder) IncPostCreated() {
	atomic.AddUint64(&m.postsCreated, 1)
}

// IncPostDeleted increments the post deleted counter.
func (m *InMemoryRecorder) IncPostDeleted() {
	atomic.AddUint64(&m.postsDeleted, 1)
}

// IncPostLiked increments the like counter.
func (m *InMemoryRecorder) IncPostLiked() {
	atomic.AddUint64(&m.postsLiked, 1)
}

// IncCommentAdded increments the comment counter.
func (m *InMemoryRecorder) IncCommentAdded() {
	atomic.AddUint64(&m.commentsAdded, 1)
}

// IncGithubCacheHit increments the repo-listing cache hit counter.
func (m *InMemoryRecorder) IncGithubCacheHit() {
	atomic.AddUint64(&m.githubCacheHits, 1)
}

// IncGithubCacheMiss increments the repo-listing cache miss counter.
func (m *InMemoryRecorder) IncGithubCacheMiss() {
	atomic.AddUint64(&m.githubCacheMisses, 1)
}

// ObserveGithubFetchDuration records one repo-listing fetch.
func (m *InMemoryRecorder) ObserveGithubFetchDuration(duration time.Duration) {
	atomic.AddUint64(&m.githubFetchCount, 1)
	atomic.AddInt64(&m.githubFetchTotalNs, duration.Nanoseconds())
}
