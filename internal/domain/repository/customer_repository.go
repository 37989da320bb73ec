package repository

import (
	"context"

	"github.com/turtacn/pulse/internal/domain/models"
)

// CustomerRepository provides access to customer accounts and their raw
// metric snapshots.
type CustomerRepository interface {
	// GetByID returns the customer, or a not-found error if unknown.
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)

	// Create persists a new customer.
	Create(ctx context.Context, customer *models.Customer) error

	// UpdateMetrics replaces a customer's metric snapshot. Callers must
	// invalidate the customer's cached assessment after a successful update.
	UpdateMetrics(ctx context.Context, customerID string, metrics models.CustomerMetrics) error
}
