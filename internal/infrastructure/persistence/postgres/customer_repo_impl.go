package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/repository"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

type customerRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewCustomerRepository creates the gorm-backed CustomerRepository.
func NewCustomerRepository(db *gorm.DB, log logger.Logger) repository.CustomerRepository {
	return &customerRepository{db: db, log: log.WithComponent("CustomerRepository")}
}

func (r *customerRepository) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", customerID).First(&customer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCustomerNotFound(customerID)
		}
		return nil, errors.ErrInternal("failed to load customer").
			WithMetadata("customer_id", customerID).
			WithCause(err)
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := customer.Metrics.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return errors.ErrInternal("failed to create customer").
			WithMetadata("customer_id", customer.ID).
			WithCause(err)
	}
	return nil
}

func (r *customerRepository) UpdateMetrics(ctx context.Context, customerID string, metrics models.CustomerMetrics) error {
	if err := metrics.Validate(); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"metric_active_users":       metrics.ActiveUsers,
			"metric_feature_adoption":   metrics.FeatureAdoption,
			"metric_login_frequency":    metrics.LoginFrequency,
			"metric_nps_score":          metrics.NPSScore,
			"metric_email_engagement":   metrics.EmailEngagement,
			"metric_event_attendance":   metrics.EventAttendance,
			"metric_csat_score":         metrics.CSATScore,
			"metric_sla_attainment":     metrics.SLAAttainment,
			"metric_ticket_trend":       metrics.TicketTrend,
			"metric_payment_health":     metrics.PaymentHealth,
			"metric_renewal_likelihood": metrics.RenewalLikelihood,
			"updated_at":                time.Now().UTC(),
		})
	if res.Error != nil {
		return errors.ErrInternal("failed to update customer metrics").
			WithMetadata("customer_id", customerID).
			WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrCustomerNotFound(customerID)
	}
	return nil
}
