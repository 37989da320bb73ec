package postgres

import (
	"context"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/repository"
	"github.com/turtacn/pulse/internal/domain/service"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/logger"
)

// Fixed blend weights for turning raw signals into category sub-scores. All
// raw signals arrive pre-normalized to [0,100] from the analytics pipeline.
const (
	usageActiveUsersWeight     = 0.4
	usageFeatureAdoptionWeight = 0.4
	usageLoginFrequencyWeight  = 0.2

	engagementNPSWeight        = 0.5
	engagementEmailWeight      = 0.3
	engagementAttendanceWeight = 0.2

	supportCSATWeight        = 0.5
	supportSLAWeight         = 0.3
	supportTicketTrendWeight = 0.2

	financialPaymentWeight = 0.7
	financialRenewalWeight = 0.3
)

type metricsProvider struct {
	customers repository.CustomerRepository
	log       logger.Logger
}

// NewMetricsProvider creates a MetricsProvider that derives category
// sub-scores from the customer's stored metric snapshot.
func NewMetricsProvider(customers repository.CustomerRepository, log logger.Logger) service.MetricsProvider {
	return &metricsProvider{customers: customers, log: log.WithComponent("MetricsProvider")}
}

func (p *metricsProvider) GetCustomerMetrics(ctx context.Context, customerID string) (map[constants.MetricCategory]float64, error) {
	customer, err := p.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return BlendMetrics(customer.Metrics), nil
}

// BlendMetrics folds the raw signal columns into the four category
// sub-scores. Inputs are validated on write, so each blend stays in [0,100]
// by construction; the clamp guards stored rows that predate validation.
func BlendMetrics(m models.CustomerMetrics) map[constants.MetricCategory]float64 {
	return map[constants.MetricCategory]float64{
		constants.CategoryUsage: models.ClampScore(
			usageActiveUsersWeight*m.ActiveUsers +
				usageFeatureAdoptionWeight*m.FeatureAdoption +
				usageLoginFrequencyWeight*m.LoginFrequency),
		constants.CategoryEngagement: models.ClampScore(
			engagementNPSWeight*m.NPSScore +
				engagementEmailWeight*m.EmailEngagement +
				engagementAttendanceWeight*m.EventAttendance),
		constants.CategorySupport: models.ClampScore(
			supportCSATWeight*m.CSATScore +
				supportSLAWeight*m.SLAAttainment +
				supportTicketTrendWeight*m.TicketTrend),
		constants.CategoryFinancial: models.ClampScore(
			financialPaymentWeight*m.PaymentHealth +
				financialRenewalWeight*m.RenewalLikelihood),
	}
}
