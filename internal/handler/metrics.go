package handler

import (
	"fmt"
	"net/http"

	"github.com/devlink/devlink/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "devlink_accounts_registered_total %d\n", snap.AccountsRegistered)
	writeMetric(w, "devlink_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "devlink_logins_total{status=\"failure\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "devlink_posts_created_total %d\n", snap.PostsCreated)
	writeMetric(w, "devlink_posts_deleted_total %d\n", snap.PostsDeleted)
	writeMetric(w, "devlink_posts_liked_total %d\n", snap.PostsLiked)
	writeMetric(w, "devlink_comments_added_total %d\n", snap.CommentsAdded)

	writeMetric(w, "devlink_github_cache_hits_total %d\n", snap.GithubCacheHits)
	writeMetric(w, "devlink_github_cache_misses_total %d\n", snap.GithubCacheMisses)
	writeMetric(w, "devlink_github_fetch_duration_seconds_count %d\n", snap.GithubFetchCount)
	writeMetric(w, "devlink_github_fetch_duration_seconds_sum %.6f\n", float64(snap.GithubFetchTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
