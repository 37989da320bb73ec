// Package application wires the scoring domain services into the assessment
// workflow exposed to the interface layer.
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/repository"
	"github.com/turtacn/pulse/internal/domain/service"
	"github.com/turtacn/pulse/internal/infrastructure/monitoring"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/logger"
)

// factorCategories maps a metric category to the risk factor it produces.
var factorCategories = map[constants.MetricCategory]string{
	constants.CategoryUsage:      "usage_decline",
	constants.CategoryEngagement: "engagement_drop",
	constants.CategorySupport:    "support_strain",
	constants.CategoryFinancial:  "financial_risk",
}

// factorWeights are the fixed importance weights of the derived factors.
var factorWeights = map[string]float64{
	"usage_decline":   0.8,
	"engagement_drop": 0.6,
	"support_strain":  0.5,
	"financial_risk":  0.4,
}

var factorDescriptions = map[string]string{
	"usage_decline":   "Product usage is below healthy levels",
	"engagement_drop": "Customer engagement signals are weakening",
	"support_strain":  "Support experience is degrading",
	"financial_risk":  "Financial signals indicate churn risk",
}

// Metrics derived from the stored snapshot carry high but not full confidence.
const derivedFactorConfidence = 0.9

// AssessmentService is the single entry point for risk assessments.
type AssessmentService interface {
	// Assess scores the supplied metrics for a customer, consulting and
	// populating the profile cache.
	Assess(ctx context.Context, customerID string, metrics map[constants.MetricCategory]float64) (*models.RiskProfile, error)

	// GetCachedOrAssess fetches the customer's current metrics and assesses
	// them, serving from cache when fresh.
	GetCachedOrAssess(ctx context.Context, customerID string) (*models.RiskProfile, error)

	// Invalidate evicts the customer's cached assessment. Must be called by
	// any collaborator that mutates the customer's metrics.
	Invalidate(ctx context.Context, customerID string)
}

type assessmentService struct {
	aggregator  *service.ScoreAggregator
	recommender *service.RecommendationEngine
	cache       service.ProfileCache
	profiles    repository.RiskProfileRepository
	provider    service.MetricsProvider
	publisher   service.AssessmentPublisher
	metrics     *monitoring.Metrics
	log         logger.Logger
}

// NewAssessmentService constructs the assessment workflow. publisher and
// metrics may be nil.
func NewAssessmentService(
	aggregator *service.ScoreAggregator,
	recommender *service.RecommendationEngine,
	cache service.ProfileCache,
	profiles repository.RiskProfileRepository,
	provider service.MetricsProvider,
	publisher service.AssessmentPublisher,
	metrics *monitoring.Metrics,
	log logger.Logger,
) AssessmentService {
	return &assessmentService{
		aggregator:  aggregator,
		recommender: recommender,
		cache:       cache,
		profiles:    profiles,
		provider:    provider,
		publisher:   publisher,
		metrics:     metrics,
		log:         log.WithComponent("AssessmentService"),
	}
}

func (s *assessmentService) Assess(ctx context.Context, customerID string, metrics map[constants.MetricCategory]float64) (*models.RiskProfile, error) {
	ctx, span := otel.Tracer("pulse/assessment").Start(ctx, "Assess")
	span.SetAttributes(attribute.String("customer_id", customerID))
	defer span.End()

	start := time.Now()
	fingerprint := models.MetricsFingerprint(metrics)

	computed := false
	profile, err := s.cache.GetOrCompute(ctx, customerID, fingerprint, func(ctx context.Context) (*models.RiskProfile, error) {
		computed = true
		return s.compute(ctx, customerID, metrics, fingerprint)
	})
	if err != nil {
		s.metrics.RecordAssessment("", "error", time.Since(start))
		return nil, err
	}

	if computed {
		s.metrics.RecordCacheLookup("miss")
	} else {
		s.metrics.RecordCacheLookup("hit")
	}
	s.metrics.RecordAssessment(string(profile.SeverityLevel), "success", time.Since(start))
	return profile, nil
}

func (s *assessmentService) GetCachedOrAssess(ctx context.Context, customerID string) (*models.RiskProfile, error) {
	metrics, err := s.provider.GetCustomerMetrics(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.Assess(ctx, customerID, metrics)
}

func (s *assessmentService) Invalidate(ctx context.Context, customerID string) {
	s.cache.Invalidate(ctx, customerID)
	s.metrics.RecordCacheInvalidation()
}

// compute runs the full scoring pipeline: aggregate the health score, derive
// weighted risk factors from category deficits, classify severity of the risk
// score, generate recommendations, and persist the resulting profile.
func (s *assessmentService) compute(ctx context.Context, customerID string, metrics map[constants.MetricCategory]float64, fingerprint string) (*models.RiskProfile, error) {
	health, err := s.aggregator.Aggregate(metrics)
	if err != nil {
		return nil, err
	}

	riskScore := models.ClampScore(100 - health.Value)
	severity := service.ClassifySeverity(riskScore)

	factors, err := s.deriveFactors(health)
	if err != nil {
		return nil, err
	}
	recommendations := s.recommender.Recommend(factors)

	profile, err := models.NewRiskProfile(customerID, riskScore, severity, factors, recommendations, fingerprint)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAssessed(ctx, profile); err != nil {
			// Publication is advisory; the assessment itself succeeded.
			s.log.Warn(ctx, "failed to publish assessment event", logger.Fields{
				"customer_id": customerID, "error": err.Error(),
			})
		}
	}

	s.log.Info(ctx, "customer assessed", logger.Fields{
		"customer_id": customerID,
		"health":      health.Value,
		"risk_score":  riskScore,
		"severity":    string(severity),
	})
	return profile, nil
}

// deriveFactors turns each category deficit into a risk factor, in scoring
// order. A sub-score of 100 still yields a zero-impact factor so profiles
// always record the full evaluation.
func (s *assessmentService) deriveFactors(health models.HealthScore) ([]models.RiskFactor, error) {
	factors := make([]models.RiskFactor, 0, len(constants.Categories))
	for _, category := range constants.Categories {
		subscore, ok := health.Components[category]
		if !ok {
			continue
		}
		name := factorCategories[category]
		factor, err := models.NewRiskFactor(
			name,
			(100-subscore)/100,
			factorWeights[name],
			derivedFactorConfidence,
			factorDescriptions[name],
		)
		if err != nil {
			return nil, err
		}
		factors = append(factors, factor)
	}
	return factors, nil
}
