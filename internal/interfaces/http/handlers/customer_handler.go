package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/pulse/internal/application"
	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/internal/domain/repository"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

// CustomerHandler serves customer account endpoints.
type CustomerHandler struct {
	customers   repository.CustomerRepository
	assessments application.AssessmentService
	log         logger.Logger
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(customers repository.CustomerRepository, assessments application.AssessmentService, log logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers:   customers,
		assessments: assessments,
		log:         log.WithComponent("CustomerHandler"),
	}
}

// CreateCustomerRequest is the body for customer creation.
type CreateCustomerRequest struct {
	Name    string                 `json:"name" binding:"required"`
	Segment string                 `json:"segment"`
	Metrics models.CustomerMetrics `json:"metrics"`
}

// Create godoc
// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Customer
// @Failure      400  {object}  errors.ErrorResponse
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.ErrValidation("body", "malformed customer request").WithCause(err)
		c.JSON(appErr.HTTPStatus(), errors.ToErrorResponse(appErr))
		return
	}

	customer := &models.Customer{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Segment: req.Segment,
		Metrics: req.Metrics,
	}
	if err := h.customers.Create(c.Request.Context(), customer); err != nil {
		c.JSON(errors.HTTPStatusOf(err), errors.ToErrorResponse(err))
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// Get godoc
// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Param        id  path  string  true  "Customer ID"
// @Success      200  {object}  models.Customer
// @Failure      404  {object}  errors.ErrorResponse
// @Router       /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(errors.HTTPStatusOf(err), errors.ToErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateMetrics godoc
// @Summary      Update customer metrics
// @Description  Replaces the metric snapshot and evicts the cached assessment, so the next read reflects the new data immediately.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Customer ID"
// @Success      200  {object}  models.CustomerMetrics
// @Failure      400  {object}  errors.ErrorResponse
// @Router       /api/v1/customers/{id}/metrics [put]
func (h *CustomerHandler) UpdateMetrics(c *gin.Context) {
	customerID := c.Param("id")

	var metrics models.CustomerMetrics
	if err := c.ShouldBindJSON(&metrics); err != nil {
		appErr := errors.ErrValidation("body", "malformed metrics payload").WithCause(err)
		c.JSON(appErr.HTTPStatus(), errors.ToErrorResponse(appErr))
		return
	}

	if err := h.customers.UpdateMetrics(c.Request.Context(), customerID, metrics); err != nil {
		c.JSON(errors.HTTPStatusOf(err), errors.ToErrorResponse(err))
		return
	}

	// Metric mutations must not wait out the cache TTL.
	h.assessments.Invalidate(c.Request.Context(), customerID)

	c.JSON(http.StatusOK, metrics)
}
