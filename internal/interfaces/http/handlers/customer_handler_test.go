package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/interfaces/http/handlers"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

// MockCustomerRepository is a mock implementation of the CustomerRepository interface.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateMetrics(ctx context.Context, customerID string, metrics models.CustomerMetrics) error {
	args := m.Called(ctx, customerID, metrics)
	return args.Error(0)
}

func setupCustomerRouter(repo *MockCustomerRepository, svc *MockAssessmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewCustomerHandler(repo, svc, logger.NewNoopLogger())

	r := gin.New()
	r.POST("/api/v1/customers", handler.Create)
	r.GET("/api/v1/customers/:id", handler.Get)
	r.PUT("/api/v1/customers/:id/metrics", handler.UpdateMetrics)
	return r
}

func TestCreateCustomerEndpoint(t *testing.T) {
	repo := new(MockCustomerRepository)
	router := setupCustomerRouter(repo, new(MockAssessmentService))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Customer) bool {
		return c.ID != "" && c.Name == "Acme Corp" && c.Segment == "enterprise"
	})).Return(nil)

	body, _ := json.Marshal(gin.H{
		"name":    "Acme Corp",
		"segment": "enterprise",
		"metrics": gin.H{"active_users": 80},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var got models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	repo.AssertExpectations(t)
}

func TestCreateCustomerEndpoint_MissingName(t *testing.T) {
	repo := new(MockCustomerRepository)
	router := setupCustomerRouter(repo, new(MockAssessmentService))

	body, _ := json.Marshal(gin.H{"segment": "enterprise"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestGetCustomerEndpoint_NotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	router := setupCustomerRouter(repo, new(MockAssessmentService))

	repo.On("GetByID", mock.Anything, "ghost").Return(nil, errors.ErrCustomerNotFound("ghost"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMetricsEndpoint_InvalidatesCache(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := new(MockAssessmentService)
	router := setupCustomerRouter(repo, svc)

	repo.On("UpdateMetrics", mock.Anything, "cust-1", mock.Anything).Return(nil)
	svc.On("Invalidate", mock.Anything, "cust-1").Return()

	body, _ := json.Marshal(gin.H{"active_users": 40, "payment_health": 90})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/customers/cust-1/metrics", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertCalled(t, "Invalidate", mock.Anything, "cust-1")
}

func TestUpdateMetricsEndpoint_ValidationFailureSkipsInvalidation(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := new(MockAssessmentService)
	router := setupCustomerRouter(repo, svc)

	repo.On("UpdateMetrics", mock.Anything, "cust-1", mock.Anything).
		Return(errors.ErrValidation("active_users", "must be in [0,100], got 120"))

	body, _ := json.Marshal(gin.H{"active_users": 120})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/customers/cust-1/metrics", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Invalidate")
}
