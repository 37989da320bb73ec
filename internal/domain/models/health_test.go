package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/pkg/constants"
)

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, models.ClampScore(-5))
	assert.Equal(t, 0.0, models.ClampScore(math.NaN()))
	assert.Equal(t, 100.0, models.ClampScore(104.2))
	assert.Equal(t, 42.5, models.ClampScore(42.5))
	assert.Equal(t, 0.0, models.ClampScore(0))
	assert.Equal(t, 100.0, models.ClampScore(100))
}

func TestMetricsFingerprint(t *testing.T) {
	metrics := map[constants.MetricCategory]float64{
		constants.CategoryUsage:      80,
		constants.CategoryEngagement: 60,
		constants.CategorySupport:    40,
		constants.CategoryFinancial:  20,
	}

	first := models.MetricsFingerprint(metrics)
	second := models.MetricsFingerprint(metrics)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	changed := map[constants.MetricCategory]float64{
		constants.CategoryUsage:      80,
		constants.CategoryEngagement: 60,
		constants.CategorySupport:    40,
		constants.CategoryFinancial:  21,
	}
	assert.NotEqual(t, first, models.MetricsFingerprint(changed))

	// Map iteration order must not leak into the fingerprint.
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, models.MetricsFingerprint(metrics))
	}
}
