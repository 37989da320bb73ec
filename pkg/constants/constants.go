// Package constants defines shared constants for the Pulse customer health service.
package constants

import "time"

// ContextKey is the type used for values stored in a request context.
type ContextKey string

const (
	ContextKeyRequestID  ContextKey = "request_id"
	ContextKeyCustomerID ContextKey = "customer_id"
	ContextKeyTraceID    ContextKey = "trace_id"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

// MetricCategory names one of the four health score dimensions.
type MetricCategory string

const (
	CategoryUsage      MetricCategory = "usage"
	CategoryEngagement MetricCategory = "engagement"
	CategorySupport    MetricCategory = "support"
	CategoryFinancial  MetricCategory = "financial"
)

// Categories lists all metric categories in scoring order.
var Categories = []MetricCategory{
	CategoryUsage,
	CategoryEngagement,
	CategorySupport,
	CategoryFinancial,
}

// Default category weights for the composite health score. The weights must
// sum to 1.0; config.Validate enforces this at startup.
const (
	DefaultWeightUsage      = 0.4
	DefaultWeightEngagement = 0.3
	DefaultWeightSupport    = 0.2
	DefaultWeightFinancial  = 0.1
)

// Severity thresholds. A risk score at or above a threshold falls into that
// tier; evaluation is highest-first.
const (
	SeverityThresholdCritical = 90.0
	SeverityThresholdHigh     = 75.0
	SeverityThresholdMedium   = 50.0
)

// Recommendation impact thresholds and timelines.
const (
	ImpactThresholdHigh   = 0.6
	ImpactThresholdMedium = 0.3

	TimelineImmediate = "immediate"
	TimelineWeek      = "7 days"
)

// Cache defaults.
const (
	DefaultProfileCacheTTL      = 300 * time.Second
	DefaultCacheCleanupInterval = 10 * time.Minute

	ProfileCacheKeyPrefix = "risk:profile:"
)

// Kafka topics and consumer group.
const (
	TopicMetricsUpdated       = "customer.metrics.updated"
	TopicProfileAssessed      = "risk.profile.assessed"
	ConsumerGroupInvalidation = "pulse-invalidation-consumers"
)
