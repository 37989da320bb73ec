package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/service"
	"github.com/turtacn/pulse/pkg/constants"
)

func mustFactor(t *testing.T, category string, impactScore, weight float64) models.RiskFactor {
	t.Helper()
	factor, err := models.NewRiskFactor(category, impactScore, weight, 0.9, "")
	require.NoError(t, err)
	return factor
}

func TestRecommendationEngine_PriorityTiers(t *testing.T) {
	engine := service.NewRecommendationEngine()

	testCases := []struct {
		name         string
		factor       models.RiskFactor
		wantCount    int
		wantPriority models.RecommendationPriority
		wantTimeline string
	}{
		{
			name:         "HighImpact",
			factor:       mustFactor(t, "usage_decline", 0.8, 0.8), // impact 0.64
			wantCount:    1,
			wantPriority: models.PriorityHigh,
			wantTimeline: constants.TimelineImmediate,
		},
		{
			name:         "MediumImpact",
			factor:       mustFactor(t, "engagement_drop", 0.7, 0.5), // impact 0.35
			wantCount:    1,
			wantPriority: models.PriorityMedium,
			wantTimeline: constants.TimelineWeek,
		},
		{
			name:      "LowImpactOmitted",
			factor:    mustFactor(t, "financial_risk", 0.2, 0.2), // impact 0.04
			wantCount: 0,
		},
		{
			name:      "ExactlyMediumThresholdOmitted",
			factor:    mustFactor(t, "support_strain", 0.6, 0.5), // impact 0.30
			wantCount: 0,
		},
		{
			name:         "JustAboveHighThreshold",
			factor:       mustFactor(t, "usage_decline", 0.61, 1.0), // impact 0.61
			wantCount:    1,
			wantPriority: models.PriorityHigh,
			wantTimeline: constants.TimelineImmediate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recs := engine.Recommend([]models.RiskFactor{tc.factor})
			require.Len(t, recs, tc.wantCount)
			if tc.wantCount == 0 {
				return
			}
			rec := recs[0]
			assert.Equal(t, tc.factor.Category, rec.Factor)
			assert.InDelta(t, tc.factor.Impact(), rec.Impact, 1e-9)
			assert.Equal(t, tc.wantPriority, rec.Priority)
			assert.Equal(t, tc.wantTimeline, rec.Timeline)
			assert.NotEmpty(t, rec.SuggestedActions)
		})
	}
}

func TestRecommendationEngine_SortedByDescendingImpact(t *testing.T) {
	engine := service.NewRecommendationEngine()

	factors := []models.RiskFactor{
		mustFactor(t, "financial_risk", 0.9, 0.5),   // 0.45
		mustFactor(t, "usage_decline", 0.9, 0.8),    // 0.72
		mustFactor(t, "engagement_drop", 0.85, 0.6), // 0.51
	}

	recs := engine.Recommend(factors)
	require.Len(t, recs, 3)
	assert.Equal(t, "usage_decline", recs[0].Factor)
	assert.Equal(t, "engagement_drop", recs[1].Factor)
	assert.Equal(t, "financial_risk", recs[2].Factor)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Impact, recs[i].Impact)
	}
}

func TestRecommendationEngine_StableOrderOnEqualImpact(t *testing.T) {
	engine := service.NewRecommendationEngine()

	// Equal impacts keep evaluation order.
	factors := []models.RiskFactor{
		mustFactor(t, "support_strain", 0.8, 0.5),  // 0.40
		mustFactor(t, "financial_risk", 1.0, 0.4),  // 0.40
		mustFactor(t, "engagement_drop", 0.5, 0.8), // 0.40
	}

	recs := engine.Recommend(factors)
	require.Len(t, recs, 3)
	assert.Equal(t, "support_strain", recs[0].Factor)
	assert.Equal(t, "financial_risk", recs[1].Factor)
	assert.Equal(t, "engagement_drop", recs[2].Factor)
}

func TestRecommendationEngine_Idempotent(t *testing.T) {
	engine := service.NewRecommendationEngine()

	factors := []models.RiskFactor{
		mustFactor(t, "usage_decline", 0.9, 0.8),
		mustFactor(t, "engagement_drop", 0.7, 0.6),
		mustFactor(t, "financial_risk", 0.3, 0.4),
	}

	first := engine.Recommend(factors)
	second := engine.Recommend(factors)
	assert.Equal(t, first, second)
}

func TestRecommendationEngine_UnknownCategoryUsesGenericActions(t *testing.T) {
	engine := service.NewRecommendationEngine()

	recs := engine.Recommend([]models.RiskFactor{
		mustFactor(t, "churn_signal", 0.9, 0.9),
	})
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Review and assess factor impact"}, recs[0].SuggestedActions)
}

func TestRecommendationEngine_ActionsAreCopies(t *testing.T) {
	engine := service.NewRecommendationEngine()

	factor := mustFactor(t, "usage_decline", 0.9, 0.9)
	first := engine.Recommend([]models.RiskFactor{factor})
	require.Len(t, first, 1)
	first[0].SuggestedActions[0] = "mutated"

	second := engine.Recommend([]models.RiskFactor{factor})
	require.Len(t, second, 1)
	assert.NotEqual(t, "mutated", second[0].SuggestedActions[0])
}

func TestRecommendationEngine_EmptyInput(t *testing.T) {
	engine := service.NewRecommendationEngine()
	assert.Empty(t, engine.Recommend(nil))
	assert.Empty(t, engine.Recommend([]models.RiskFactor{}))
}
