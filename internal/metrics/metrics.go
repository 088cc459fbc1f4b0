package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bloghub_posts_submitted_total",
		Help: "Posts submitted for review.",
	})

	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bloghub_moderation_actions_total",
		Help: "Moderation decisions by resulting status.",
	}, []string{"status"})

	PostLikes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bloghub_post_likes_total",
		Help: "Likes recorded on published posts.",
	})

	ActivityDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bloghub_activity_dropped_total",
		Help: "Activity events dropped because the worker queue was full.",
	})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method", "status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"path", "method", "status"})
)
