package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAccountRegistered is a no-op.
func (n *NoopRecorder) IncAccountRegistered() {}

// IncLoginSucceeded is a no-op.
func (n *NoopRecorder) IncLoginSucceeded() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}

// IncPostCreated is a no-op.
func (n *NoopRecorder) IncPostCreated() {}

// IncPostDeleted is a no-op.
func (n *NoopRecorder) IncPostDeleted() {}

// IncPostLiked is a no-op.
func (n *NoopRecorder) IncPostLiked() {}

// IncCommentAdded is a no-op.
func (n *NoopRecorder) IncCommentAdded() {}

// IncGithubCacheHit is a no-op.
func (n *NoopRecorder) IncGithubCacheHit() {}

// IncGithubCacheMiss is a no-op.
func (n *NoopRecorder) IncGithubCacheMiss() {}

// ObserveGithubFetchDuration is a no-op.
func (n *NoopRecorder) ObserveGithubFetchDuration(duration time.Duration) {}
