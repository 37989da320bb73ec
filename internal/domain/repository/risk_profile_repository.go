// Package repository defines the persistence contracts consumed by the domain
// and application layers. Implementations live under internal/infrastructure.
package repository

import (
	"context"

	"github.com/turtacn/pulse/internal/domain/models"
)

// RiskProfileRepository persists assessment results. Profiles are append-only:
// Save always creates a new row, it never updates an existing one.
type RiskProfileRepository interface {
	// Save persists a newly assessed profile.
	Save(ctx context.Context, profile *models.RiskProfile) error

	// LoadLatest returns the most recent profile for a customer, or (nil, nil)
	// if the customer has never been assessed.
	LoadLatest(ctx context.Context, customerID string) (*models.RiskProfile, error)

	// ListByCustomer returns the assessment history for a customer, newest
	// first, limited to limit entries.
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]*models.RiskProfile, error)
}
