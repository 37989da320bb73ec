package service

import (
	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/pkg/constants"
)

// ClassifySeverity maps a risk score to its severity tier using the fixed
// thresholds. Boundaries are inclusive on the lower bound of each tier and
// evaluation runs highest-first, so exactly 90 is CRITICAL and exactly 75 is
// HIGH. Callers validate the score range at the entry point; every float in
// [0,100] maps to exactly one tier.
func ClassifySeverity(score float64) models.SeverityLevel {
	switch {
	case score >= constants.SeverityThresholdCritical:
		return models.SeverityCritical
	case score >= constants.SeverityThresholdHigh:
		return models.SeverityHigh
	case score >= constants.SeverityThresholdMedium:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
