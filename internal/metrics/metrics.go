package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jurnal"

var (
	// RequestDuration observes HTTP request latency in seconds.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// ActiveRequests tracks in-flight HTTP requests.
	ActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "active_requests",
		Help:      "Number of HTTP requests currently being served.",
	})

	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Number of accounts created through signup.",
	})

	ArticlesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Number of articles created.",
	})

	ArticleViews = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_views_total",
		Help:      "Number of recorded article views.",
	})
)
