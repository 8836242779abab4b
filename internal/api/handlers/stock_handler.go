package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/arisathang/Stock-management/internal/service"
	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	service *service.StockService
}

func NewStockHandler(service *service.StockService) *StockHandler {
	return &StockHandler{service: service}
}

// GetStatus serves GET /api/v1/stock/status. An optional ?date=YYYY-MM-DD
// switches from the live snapshot to a historical one.
func (h *StockHandler) GetStatus(c *gin.Context) {
	var date *time.Time
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}
		date = &parsed
	}

	status, err := h.service.GetStockStatus(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

type updateStockRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	RemainingStock int    `json:"remaining_stock"`
	RecordDate     string `json:"record_date"`
}

// UpdateStock serves POST /api/v1/stock/update. RecordDate defaults to today.
func (h *StockHandler) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	recordDate := time.Now()
	if req.RecordDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RecordDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "record_date must be in YYYY-MM-DD format"})
			return
		}
		recordDate = parsed
	}

	if err := h.service.UpdateStock(c.Request.Context(), req.ProductID, req.RemainingStock, recordDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
