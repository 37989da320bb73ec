// Package service contains the scoring domain services: the score aggregator,
// the risk classifier, the recommendation engine, and the boundary contracts
// they depend on.
package service

import (
	"context"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/pkg/constants"
)

//go:generate mockery --name MetricsProvider --output mocks --outpkg mocks

// MetricsProvider supplies the normalized category sub-scores for a customer.
// The service does not know how metrics are stored or computed upstream.
type MetricsProvider interface {
	// GetCustomerMetrics returns the category sub-scores, each in [0,100].
	GetCustomerMetrics(ctx context.Context, customerID string) (map[constants.MetricCategory]float64, error)
}

// ComputeFunc produces a fresh risk profile. It is invoked by the cache at
// most once per key regardless of how many callers are waiting.
type ComputeFunc func(ctx context.Context) (*models.RiskProfile, error)

// ProfileCache memoizes assessment results per customer, keyed by customer ID
// with a metrics fingerprint for staleness detection.
type ProfileCache interface {
	// GetOrCompute returns the cached profile for customerID when it is fresh
	// and its fingerprint matches, otherwise runs compute. Concurrent calls
	// for the same customer collapse into a single computation; every waiter
	// receives the same result or the same error. A failed computation is
	// never cached.
	GetOrCompute(ctx context.Context, customerID, fingerprint string, compute ComputeFunc) (*models.RiskProfile, error)

	// Invalidate evicts the customer's cache entry. Collaborators mutating a
	// customer's metrics must call this rather than waiting out the TTL.
	Invalidate(ctx context.Context, customerID string)
}

// AssessmentPublisher announces completed assessments to downstream
// consumers. Delivery channels are outside this service's scope.
type AssessmentPublisher interface {
	PublishAssessed(ctx context.Context, profile *models.RiskProfile) error
}
