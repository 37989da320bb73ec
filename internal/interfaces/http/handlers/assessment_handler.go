// Package handlers contains the gin HTTP handlers for the health service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/pulse/internal/application"
	"github.com/turtacn/pulse/internal/domain/repository"
	"github.com/turtacn/pulse/pkg/constants"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

// AssessmentHandler serves risk assessment endpoints.
type AssessmentHandler struct {
	assessments application.AssessmentService
	profiles    repository.RiskProfileRepository
	log         logger.Logger
}

// NewAssessmentHandler creates an AssessmentHandler.
func NewAssessmentHandler(assessments application.AssessmentService, profiles repository.RiskProfileRepository, log logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessments: assessments,
		profiles:    profiles,
		log:         log.WithComponent("AssessmentHandler"),
	}
}

// AssessRequest carries caller-supplied category sub-scores.
type AssessRequest struct {
	Metrics map[string]float64 `json:"metrics" binding:"required"`
}

// Assess godoc
// @Summary      Assess customer risk
// @Description  Runs a risk assessment over the supplied category sub-scores.
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Customer ID"
// @Success      200  {object}  models.RiskProfile
// @Failure      400  {object}  errors.ErrorResponse
// @Router       /api/v1/customers/{id}/assess [post]
func (h *AssessmentHandler) Assess(c *gin.Context) {
	customerID := c.Param("id")

	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.ErrValidation("body", "malformed assessment request").WithCause(err)
		c.JSON(appErr.HTTPStatus(), errors.ToErrorResponse(appErr))
		return
	}

	metrics := make(map[constants.MetricCategory]float64, len(req.Metrics))
	for k, v := range req.Metrics {
		metrics[constants.MetricCategory(k)] = v
	}

	profile, err := h.assessments.Assess(c.Request.Context(), customerID, metrics)
	if err != nil {
		h.log.Error(c.Request.Context(), "assessment failed", err, logger.Fields{"customer_id": customerID})
		c.JSON(errors.HTTPStatusOf(err), errors.ToErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetRiskProfile godoc
// @Summary      Get current risk profile
// @Description  Returns the customer's risk profile, assessing from current metrics when no fresh cached result exists.
// @Tags         assessments
// @Produce      json
// @Param        id  path  string  true  "Customer ID"
// @Success      200  {object}  models.RiskProfile
// @Failure      404  {object}  errors.ErrorResponse
// @Router       /api/v1/customers/{id}/risk-profile [get]
func (h *AssessmentHandler) GetRiskProfile(c *gin.Context) {
	customerID := c.Param("id")

	profile, err := h.assessments.GetCachedOrAssess(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(errors.HTTPStatusOf(err), errors.ToErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetHistory godoc
// @Summary      Get assessment history
// @Description  Returns the customer's past risk profiles, newest first.
// @Tags         assessments
// @Produce      json
// @Param        id  path  string  true  "Customer ID"
// @Success      200  {array}  models.RiskProfile
// @Router       /api/v1/customers/{id}/risk-profile/history [get]
func (h *AssessmentHandler) GetHistory(c *gin.Context) {
	customerID := c.Param("id")

	profiles, err := h.profiles.ListByCustomer(c.Request.Context(), customerID, 20)
	if err != nil {
		c.JSON(errors.HTTPStatusOf(err), errors.ToErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// InvalidateCache godoc
// @Summary      Invalidate cached assessment
// @Description  Evicts the customer's cached risk profile so the next read recomputes.
// @Tags         assessments
// @Param        id  path  string  true  "Customer ID"
// @Success      204
// @Router       /api/v1/customers/{id}/risk-profile/cache [delete]
func (h *AssessmentHandler) InvalidateCache(c *gin.Context) {
	h.assessments.Invalidate(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
