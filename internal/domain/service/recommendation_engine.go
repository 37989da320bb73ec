package service

import (
	"sort"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/pkg/constants"
)

// actionTable maps a factor category to its playbook of suggested actions.
var actionTable = map[string][]string{
	"usage_decline": {
		"Schedule product training session",
		"Review feature adoption metrics",
		"Send usage best practices guide",
	},
	"engagement_drop": {
		"Schedule executive business review",
		"Re-enroll customer in lifecycle campaigns",
		"Assign CSM check-in call",
	},
	"support_strain": {
		"Escalate open tickets to senior support",
		"Review SLA attainment with support lead",
		"Offer dedicated support channel",
	},
	"financial_risk": {
		"Review invoice and payment history",
		"Engage account executive on renewal terms",
		"Flag account for finance follow-up",
	},
}

// genericActions is the fallback for factor categories without a playbook.
var genericActions = []string{"Review and assess factor impact"}

// RecommendationEngine converts weighted risk factors into prioritized,
// timelined intervention recommendations. It is pure and idempotent:
// identical input always yields identical, identically ordered output.
type RecommendationEngine struct{}

// NewRecommendationEngine constructs a RecommendationEngine.
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Recommend derives recommendations from factors, in evaluation order. A
// factor with impact above 0.6 is high priority with an immediate timeline,
// above 0.3 medium priority within 7 days, and anything at or below 0.3
// produces no recommendation. Output is sorted by descending impact with a
// stable sort, so equal impacts keep their original factor order.
func (e *RecommendationEngine) Recommend(factors []models.RiskFactor) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, len(factors))
	for _, factor := range factors {
		impact := factor.Impact()

		var priority models.RecommendationPriority
		var timeline string
		switch {
		case impact > constants.ImpactThresholdHigh:
			priority = models.PriorityHigh
			timeline = constants.TimelineImmediate
		case impact > constants.ImpactThresholdMedium:
			priority = models.PriorityMedium
			timeline = constants.TimelineWeek
		default:
			continue
		}

		recommendations = append(recommendations, models.Recommendation{
			Factor:           factor.Category,
			Impact:           impact,
			Priority:         priority,
			SuggestedActions: suggestedActions(factor.Category),
			Timeline:         timeline,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Impact > recommendations[j].Impact
	})
	return recommendations
}

// suggestedActions returns a copy of the playbook for a category so callers
// cannot mutate the shared table.
func suggestedActions(category string) []string {
	actions, ok := actionTable[category]
	if !ok {
		actions = genericActions
	}
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}
