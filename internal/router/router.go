package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/handlers"
	"github.com/dhouhaelaouni/tunimed/internal/middleware"
	"github.com/dhouhaelaouni/tunimed/internal/service"
)

// SetupRouter configures all API routes
func SetupRouter(
	medicineService *service.MedicineService,
	propositionService *service.PropositionService,
	auditService *service.AuditService,
	db *database.DB,
	logger *logrus.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Identity())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":           "healthy",
			"open_connections": db.Stats().OpenConnections,
		})
	})

	medicineHandler := handlers.NewMedicineHandler(medicineService, auditService)
	propositionHandler := handlers.NewPropositionHandler(propositionService)
	auditHandler := handlers.NewAuditHandler(auditService)

	v1 := router.Group("/api/v1")
	{
		declarations := v1.Group("/declarations")
		{
			declarations.POST("", medicineHandler.Declare)
			declarations.GET("", medicineHandler.ListMine)
			declarations.GET("/pending-pharmacy-review", medicineHandler.ListPendingReview)
			declarations.GET("/:medicineId", medicineHandler.Get)
			declarations.POST("/:medicineId/verify", medicineHandler.Verify)
			declarations.POST("/:medicineId/validate", medicineHandler.Validate)
			declarations.POST("/:medicineId/cancel", medicineHandler.Cancel)
			declarations.GET("/:medicineId/eligibility", medicineHandler.CheckEligibility)
			declarations.GET("/:medicineId/audit", medicineHandler.GetAuditTrail)
		}

		propositions := v1.Group("/propositions")
		{
			propositions.GET("", propositionHandler.List)
			propositions.GET("/:propositionId", propositionHandler.Get)
			propositions.POST("/:propositionId/request", propositionHandler.Request)
		}

		audit := v1.Group("/audit")
		{
			audit.GET("/users/:userId", auditHandler.GetUserTrail)
		}
	}

	return router
}
