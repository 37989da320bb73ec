package models

import (
	"fmt"
	"math"
	"time"

	"github.com/turtacn/pulse/pkg/errors"
)

// Customer is a customer account tracked by the health service. It references
// its latest risk profile but does not own the assessment history.
type Customer struct {
	ID        string          `json:"id" gorm:"primaryKey;size:36"`
	Name      string          `json:"name" gorm:"size:255"`
	Segment   string          `json:"segment" gorm:"size:64"`
	Metrics   CustomerMetrics `json:"metrics" gorm:"embedded;embeddedPrefix:metric_"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CustomerMetrics is the snapshot of raw signals, each pre-normalized to
// [0,100] by the upstream analytics pipeline. The service treats the pipeline
// as a black box and only blends these columns into category sub-scores.
type CustomerMetrics struct {
	// Usage signals.
	ActiveUsers     float64 `json:"active_users"`
	FeatureAdoption float64 `json:"feature_adoption"`
	LoginFrequency  float64 `json:"login_frequency"`

	// Engagement signals.
	NPSScore        float64 `json:"nps_score"`
	EmailEngagement float64 `json:"email_engagement"`
	EventAttendance float64 `json:"event_attendance"`

	// Support signals.
	CSATScore     float64 `json:"csat_score"`
	SLAAttainment float64 `json:"sla_attainment"`
	TicketTrend   float64 `json:"ticket_trend"`

	// Financial signals.
	PaymentHealth     float64 `json:"payment_health"`
	RenewalLikelihood float64 `json:"renewal_likelihood"`
}

// Validate rejects any raw metric outside [0,100]. External inputs are
// rejected at the boundary, not clamped.
func (m CustomerMetrics) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"active_users", m.ActiveUsers},
		{"feature_adoption", m.FeatureAdoption},
		{"login_frequency", m.LoginFrequency},
		{"nps_score", m.NPSScore},
		{"email_engagement", m.EmailEngagement},
		{"event_attendance", m.EventAttendance},
		{"csat_score", m.CSATScore},
		{"sla_attainment", m.SLAAttainment},
		{"ticket_trend", m.TicketTrend},
		{"payment_health", m.PaymentHealth},
		{"renewal_likelihood", m.RenewalLikelihood},
	} {
		if math.IsNaN(v.value) || v.value < 0 || v.value > 100 {
			return errors.ErrValidation(v.name,
				fmt.Sprintf("must be in [0,100], got %v", v.value))
		}
	}
	return nil
}

// TableName pins the gorm table name.
func (Customer) TableName() string {
	return "customers"
}
