package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/pkg/errors"
)

func TestNewRiskFactor(t *testing.T) {
	testCases := []struct {
		name        string
		category    string
		impactScore float64
		weight      float64
		confidence  float64
		wantErr     bool
	}{
		{"Valid", "usage_decline", 0.8, 0.8, 0.9, false},
		{"BoundaryZero", "usage_decline", 0, 0, 0, false},
		{"BoundaryOne", "usage_decline", 1, 1, 1, false},
		{"EmptyCategory", "", 0.5, 0.5, 0.5, true},
		{"ImpactScoreAboveOne", "usage_decline", 1.01, 0.5, 0.5, true},
		{"NegativeWeight", "usage_decline", 0.5, -0.01, 0.5, true},
		{"NaNConfidence", "usage_decline", 0.5, 0.5, math.NaN(), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			factor, err := models.NewRiskFactor(tc.category, tc.impactScore, tc.weight, tc.confidence, "desc")
			if tc.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.category, factor.Category)
			assert.InDelta(t, tc.weight*tc.impactScore, factor.Impact(), 1e-9)
		})
	}
}

func TestNewRiskProfile(t *testing.T) {
	factor, err := models.NewRiskFactor("usage_decline", 0.8, 0.8, 0.9, "")
	require.NoError(t, err)

	profile, err := models.NewRiskProfile("cust-1", 64, models.SeverityMedium,
		[]models.RiskFactor{factor}, nil, "fp-1")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "cust-1", profile.CustomerID)
	assert.Equal(t, models.SeverityMedium, profile.SeverityLevel)
	assert.Equal(t, "fp-1", profile.Fingerprint)
	assert.False(t, profile.AssessedAt.IsZero())

	another, err := models.NewRiskProfile("cust-1", 64, models.SeverityMedium, nil, nil, "fp-1")
	require.NoError(t, err)
	assert.NotEqual(t, profile.ID, another.ID)
}

func TestNewRiskProfile_Invalid(t *testing.T) {
	testCases := []struct {
		name       string
		customerID string
		score      float64
	}{
		{"EmptyCustomerID", "", 50},
		{"NegativeScore", "cust-1", -0.5},
		{"ScoreAboveHundred", "cust-1", 100.5},
		{"NaNScore", "cust-1", math.NaN()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := models.NewRiskProfile(tc.customerID, tc.score, models.SeverityLow, nil, nil, "")
			assert.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}
