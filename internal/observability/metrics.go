// Package observability exposes Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twosides_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// VotesCast counts vote ledger outcomes by color and outcome
	// (created, changed, unchanged).
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twosides_votes_cast_total",
		Help: "Total vote operations by color and outcome",
	}, []string{"color", "outcome"})

	// CommentsCreated counts comments accepted into discussions.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twosides_comments_created_total",
		Help: "Total comments accepted into discussions",
	})

	// DiscussionsLocked counts lifecycle transitions to the locked state.
	DiscussionsLocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twosides_discussions_locked_total",
		Help: "Total discussions that reached the comment threshold and locked",
	})

	// ConnectionsFormed counts accepted connection requests.
	ConnectionsFormed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twosides_connections_formed_total",
		Help: "Total connections formed through accepted requests",
	})

	// StoreRetries counts transient record-store failures that triggered a retry.
	StoreRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twosides_store_retries_total",
		Help: "Total transient store errors that were retried, by operation",
	}, []string{"operation"})
)
