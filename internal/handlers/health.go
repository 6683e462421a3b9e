package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/services"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheck godoc
// @Summary Health check
// @Description Reports the health of the service and its dependencies
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	status := "healthy"
	servicesStatus := map[string]string{}

	if err := config.MongoDB.Client().Ping(ctx, readpref.Primary()); err != nil {
		servicesStatus["mongodb"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		servicesStatus["mongodb"] = "healthy"
	}

	if config.Redis != nil {
		if err := config.Redis.Ping(ctx).Err(); err != nil {
			servicesStatus["redis"] = "unhealthy: " + err.Error()
			status = "unhealthy"
		} else {
			servicesStatus["redis"] = "healthy"
		}
	}

	if services.VerificationQueueInstance != nil {
		if services.VerificationQueueInstance.IsHealthy() {
			servicesStatus["verification_queue"] = "healthy"
		} else {
			servicesStatus["verification_queue"] = "unhealthy"
			status = "unhealthy"
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  servicesStatus,
	})
}

// QueueStats godoc
// @Summary Verification queue statistics
// @Tags health
// @Produce json
// @Success 200 {object} services.ProcessingStats
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /queue/stats [get]
func QueueStats(c *gin.Context) {
	if services.VerificationQueueInstance == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Verification queue is not running"})
		return
	}

	c.JSON(http.StatusOK, services.VerificationQueueInstance.GetStats())
}
