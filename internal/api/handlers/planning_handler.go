package handlers

import (
	"errors"
	"net/http"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/arisathang/Stock-management/internal/planner"
	"github.com/arisathang/Stock-management/internal/service"
	"github.com/gin-gonic/gin"
)

type PlanningHandler struct {
	service *service.PlanningService
}

func NewPlanningHandler(service *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{service: service}
}

// GenerateInvoice serves POST /api/v1/invoices/generate. The body may carry a
// stock snapshot, a vendor filter and a strategy; all are optional.
func (h *PlanningHandler) GenerateInvoice(c *gin.Context) {
	var req domain.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.GenerateInvoice(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, planner.ErrNegativeQuantity) || errors.Is(err, planner.ErrInvalidBundleTier) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBreakdown serves GET /api/v1/invoices/breakdown with per-vendor spending
// rows for the most recent invoice.
func (h *PlanningHandler) GetBreakdown(c *gin.Context) {
	rows, err := h.service.GetSpendingBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendors": rows})
}
