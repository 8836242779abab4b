// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/arisathang/Stock-management/internal/api/handlers"
	"github.com/arisathang/Stock-management/internal/api/middleware"
	"github.com/arisathang/Stock-management/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	StockService    *service.StockService
	PlanningService *service.PlanningService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.StockService != nil {
			stockHandler := handlers.NewStockHandler(services.StockService)
			stockGroup := apiGroup.Group("/stock")
			{
				stockGroup.GET("/status", stockHandler.GetStatus)
				stockGroup.POST("/update", stockHandler.UpdateStock)
			}
		}

		if services.PlanningService != nil {
			planningHandler := handlers.NewPlanningHandler(services.PlanningService)
			invoiceGroup := apiGroup.Group("/invoices")
			{
				invoiceGroup.POST("/generate", planningHandler.GenerateInvoice)
				invoiceGroup.GET("/breakdown", planningHandler.GetBreakdown)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
