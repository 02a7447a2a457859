// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account lifecycle
	IncAccountRegistered()
	IncLoginSucceeded()
	IncLoginFailed()

	// Post and profile mutations
	IncPostCreated()
	IncPostDeleted()
	IncPostLiked()
	IncCommentAdded()

	// Third-party repo listing fetches
	IncGithubCacheHit()
	IncGithubCacheMiss()
	ObserveGithubFetchDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
