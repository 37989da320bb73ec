// Package models defines the domain models for the Pulse customer health
// service: customers, their metric snapshots, and the risk profiles produced
// by the assessment workflow.
package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/turtacn/pulse/pkg/errors"
)

// SeverityLevel is the discrete risk classification derived from a risk score.
type SeverityLevel string

const (
	SeverityLow      SeverityLevel = "LOW"
	SeverityMedium   SeverityLevel = "MEDIUM"
	SeverityHigh     SeverityLevel = "HIGH"
	SeverityCritical SeverityLevel = "CRITICAL"
)

// RecommendationPriority ranks an intervention recommendation.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
)

// RiskFactor is a named, weighted signal contributing to a risk assessment.
// Factors are immutable once assessed; mutate by creating a new profile.
type RiskFactor struct {
	Category    string  `json:"category"`
	ImpactScore float64 `json:"impact_score"`
	Weight      float64 `json:"weight"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// NewRiskFactor validates and constructs a RiskFactor. ImpactScore, Weight and
// Confidence must all lie in [0,1]; external inputs are rejected, never
// silently clamped.
func NewRiskFactor(category string, impactScore, weight, confidence float64, description string) (RiskFactor, error) {
	if category == "" {
		return RiskFactor{}, errors.ErrValidation("category", "must not be empty")
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"impact_score", impactScore},
		{"weight", weight},
		{"confidence", confidence},
	} {
		if math.IsNaN(v.value) || v.value < 0 || v.value > 1 {
			return RiskFactor{}, errors.ErrValidation(v.name,
				fmt.Sprintf("must be in [0,1], got %v", v.value)).
				WithMetadata("category", category)
		}
	}
	return RiskFactor{
		Category:    category,
		ImpactScore: impactScore,
		Weight:      weight,
		Confidence:  confidence,
		Description: description,
	}, nil
}

// Impact is the factor's contribution used for recommendation prioritization.
func (f RiskFactor) Impact() float64 {
	return f.Weight * f.ImpactScore
}

// Recommendation is a prioritized, timelined intervention derived from a risk
// factor. It is owned by its RiskProfile and not persisted independently.
type Recommendation struct {
	Factor           string                 `json:"factor"`
	Impact           float64                `json:"impact"`
	Priority         RecommendationPriority `json:"priority"`
	SuggestedActions []string               `json:"suggested_actions"`
	Timeline         string                 `json:"timeline"`
}

// RiskProfile is the result of one assessment of a customer. Profiles are
// append-only: later assessments supersede earlier ones, nothing is mutated
// in place. The severity level is always the threshold function of the score.
type RiskProfile struct {
	ID              string           `json:"id" gorm:"primaryKey;size:36"`
	CustomerID      string           `json:"customer_id" gorm:"size:36;index:idx_risk_profiles_customer"`
	Score           float64          `json:"score"`
	SeverityLevel   SeverityLevel    `json:"severity_level" gorm:"size:16"`
	Factors         []RiskFactor     `json:"factors" gorm:"serializer:json"`
	Recommendations []Recommendation `json:"recommendations" gorm:"serializer:json"`
	Fingerprint     string           `json:"fingerprint" gorm:"size:64"`
	AssessedAt      time.Time        `json:"assessed_at" gorm:"index:idx_risk_profiles_assessed"`
}

// NewRiskProfile validates and constructs a RiskProfile. The score must lie in
// [0,100]; factors arrive in evaluation order and recommendations sorted by
// descending impact, both preserved as given.
func NewRiskProfile(customerID string, score float64, severity SeverityLevel, factors []RiskFactor, recommendations []Recommendation, fingerprint string) (*RiskProfile, error) {
	if customerID == "" {
		return nil, errors.ErrValidation("customer_id", "must not be empty")
	}
	if math.IsNaN(score) || score < 0 || score > 100 {
		return nil, errors.ErrValidation("score",
			fmt.Sprintf("must be in [0,100], got %v", score)).
			WithMetadata("customer_id", customerID)
	}
	return &RiskProfile{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		Score:           score,
		SeverityLevel:   severity,
		Factors:         factors,
		Recommendations: recommendations,
		Fingerprint:     fingerprint,
		AssessedAt:      time.Now().UTC(),
	}, nil
}

// TableName pins the gorm table name.
func (RiskProfile) TableName() string {
	return "risk_profiles"
}
