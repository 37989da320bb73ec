package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/repository"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

type riskProfileRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewRiskProfileRepository creates the gorm-backed RiskProfileRepository.
func NewRiskProfileRepository(db *gorm.DB, log logger.Logger) repository.RiskProfileRepository {
	return &riskProfileRepository{db: db, log: log.WithComponent("RiskProfileRepository")}
}

// Save inserts a new assessment row. Profiles are append-only; an existing
// profile is superseded, never updated.
func (r *riskProfileRepository) Save(ctx context.Context, profile *models.RiskProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return errors.ErrInternal("failed to save risk profile").
			WithMetadata("customer_id", profile.CustomerID).
			WithCause(err)
	}
	return nil
}

func (r *riskProfileRepository) LoadLatest(ctx context.Context, customerID string) (*models.RiskProfile, error) {
	var profile models.RiskProfile
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("assessed_at DESC").
		First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.ErrInternal("failed to load risk profile").
			WithMetadata("customer_id", customerID).
			WithCause(err)
	}
	return &profile, nil
}

func (r *riskProfileRepository) ListByCustomer(ctx context.Context, customerID string, limit int) ([]*models.RiskProfile, error) {
	var profiles []*models.RiskProfile
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("assessed_at DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, errors.ErrInternal("failed to list risk profiles").
			WithMetadata("customer_id", customerID).
			WithCause(err)
	}
	return profiles, nil
}
