package service

import (
	"fmt"
	"math"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/errors"
)

// weightSumTolerance absorbs float accumulation noise when validating that the
// configured weights sum to 1.0.
const weightSumTolerance = 1e-9

// ScoreAggregator combines the four weighted category sub-scores into one
// composite health score bounded to [0,100]. It is pure and safe for
// unlimited concurrent use.
type ScoreAggregator struct {
	weights map[constants.MetricCategory]float64
}

// NewScoreAggregator validates the category weights and constructs an
// aggregator. Each weight must lie in [0,1] and the weights must sum to
// exactly 1.0; anything else is a configuration error, fatal at startup.
func NewScoreAggregator(weights map[constants.MetricCategory]float64) (*ScoreAggregator, error) {
	if len(weights) == 0 {
		return nil, errors.ErrConfiguration("no category weights configured")
	}
	sum := 0.0
	for category, w := range weights {
		if math.IsNaN(w) || w < 0 || w > 1 {
			return nil, errors.ErrConfiguration(
				fmt.Sprintf("weight for category %q must be in [0,1], got %v", category, w))
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return nil, errors.ErrConfiguration(
			fmt.Sprintf("category weights must sum to 1.0, got %v", sum))
	}

	owned := make(map[constants.MetricCategory]float64, len(weights))
	for k, v := range weights {
		owned[k] = v
	}
	return &ScoreAggregator{weights: owned}, nil
}

// DefaultWeights returns the standard category weighting.
func DefaultWeights() map[constants.MetricCategory]float64 {
	return map[constants.MetricCategory]float64{
		constants.CategoryUsage:      constants.DefaultWeightUsage,
		constants.CategoryEngagement: constants.DefaultWeightEngagement,
		constants.CategorySupport:    constants.DefaultWeightSupport,
		constants.CategoryFinancial:  constants.DefaultWeightFinancial,
	}
}

// Weight returns the configured weight for a category, zero if unknown.
func (a *ScoreAggregator) Weight(category constants.MetricCategory) float64 {
	return a.weights[category]
}

// Aggregate computes the composite health score from the category sub-scores.
// Every configured category must be present: a missing category is a
// MissingDataError, not a silent zero, so upstream data-quality gaps cannot
// skew the composite unnoticed. Sub-scores outside [0,100] are rejected.
func (a *ScoreAggregator) Aggregate(metrics map[constants.MetricCategory]float64) (models.HealthScore, error) {
	components := make(map[constants.MetricCategory]float64, len(a.weights))
	composite := 0.0
	for category, weight := range a.weights {
		subscore, ok := metrics[category]
		if !ok {
			return models.HealthScore{}, errors.ErrMissingData(category)
		}
		if math.IsNaN(subscore) || subscore < 0 || subscore > 100 {
			return models.HealthScore{}, errors.ErrValidation(string(category),
				fmt.Sprintf("sub-score must be in [0,100], got %v", subscore))
		}
		components[category] = subscore
		composite += weight * subscore
	}

	return models.HealthScore{
		Value:      models.ClampScore(composite),
		Components: components,
	}, nil
}
