package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/services"
	"go.uber.org/zap"
)

// CreateTrip godoc
// @Summary Request a trip
// @Description Records a trip between a passenger and a driver. The trip starts REQUESTED.
// @Tags trips
// @Accept json
// @Produce json
// @Param request body models.CreateTripRequest true "Trip data"
// @Success 201 {object} models.Trip
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not a passenger"
// @Failure 404 {object} ErrorResponse "Passenger or driver not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trips [post]
func CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	trip, err := services.TripServiceInstance.CreateTrip(c.Request.Context(), req)
	if err != nil {
		if err != models.ErrPassengerNotFound && err != models.ErrDriverNotFound && err != models.ErrInvalidObjectID {
			logging.Logger.Error("failed to create trip", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// ListTrips godoc
// @Summary List trips
// @Description Returns all trips, newest first. Filter by passenger or driver with query parameters.
// @Tags trips
// @Produce json
// @Param passengerId query string false "Filter by passenger ID"
// @Param driverId query string false "Filter by driver ID"
// @Success 200 {array} models.Trip
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trips [get]
func ListTrips(c *gin.Context) {
	ctx := c.Request.Context()

	if passengerHex := c.Query("passengerId"); passengerHex != "" {
		passengerID, err := primitiveIDFromQuery(c, passengerHex, "passengerId")
		if err != nil {
			return
		}
		trips, err := services.TripServiceInstance.ListTripsByPassenger(ctx, passengerID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, trips)
		return
	}

	if driverHex := c.Query("driverId"); driverHex != "" {
		driverID, err := primitiveIDFromQuery(c, driverHex, "driverId")
		if err != nil {
			return
		}
		trips, err := services.TripServiceInstance.ListTripsByDriver(ctx, driverID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, trips)
		return
	}

	trips, err := services.TripServiceInstance.ListTrips(ctx)
	if err != nil {
		logging.Logger.Error("failed to list trips", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

// GetTrip godoc
// @Summary Get a trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} models.Trip
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trips/{id} [get]
func GetTrip(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	trip, err := services.TripServiceInstance.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}
