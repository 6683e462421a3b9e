package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ListDrivers godoc
// @Summary List drivers
// @Tags drivers
// @Produce json
// @Success 200 {array} models.Driver
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drivers [get]
func ListDrivers(c *gin.Context) {
	drivers, err := services.DriverServiceInstance.ListDrivers(c.Request.Context())
	if err != nil {
		logging.Logger.Error("failed to list drivers", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// GetDriver godoc
// @Summary Get a driver
// @Tags drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Success 200 {object} models.Driver
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drivers/{id} [get]
func GetDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driver, err := services.DriverServiceInstance.GetDriver(c.Request.Context(), driverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

// UpdateDriver godoc
// @Summary Update a driver
// @Description Updates the driver's license data
// @Tags drivers
// @Accept json
// @Produce json
// @Param id path string true "Driver ID"
// @Param request body models.UpdateDriverRequest true "Fields to update"
// @Success 200 {object} models.Driver
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drivers/{id} [put]
func UpdateDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	driver, err := services.DriverServiceInstance.UpdateDriver(c.Request.Context(), driverID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

// DeleteDriver godoc
// @Summary Delete a driver
// @Description Removes the driver and its vehicles
// @Tags drivers
// @Param id path string true "Driver ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drivers/{id} [delete]
func DeleteDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DriverServiceInstance.DeleteDriver(c.Request.Context(), driverID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListDriverVehicles godoc
// @Summary List a driver's vehicles
// @Tags drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Success 200 {array} models.Vehicle
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drivers/{id}/vehicles [get]
func ListDriverVehicles(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicles, err := services.VehicleServiceInstance.ListVehiclesByDriver(c.Request.Context(), driverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// SelectActiveVehicle godoc
// @Summary Select the driver's active vehicle
// @Description Activates the given vehicle and deactivates the driver's others
// @Tags drivers
// @Accept json
// @Produce json
// @Param id path string true "Driver ID"
// @Param request body models.SelectActiveVehicleRequest true "Vehicle to activate"
// @Success 200 {object} models.Vehicle
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drivers/{id}/vehicles/active [put]
func SelectActiveVehicle(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.SelectActiveVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicleID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid vehicleId format"})
		return
	}

	vehicle, err := services.VehicleServiceInstance.SelectActiveVehicle(c.Request.Context(), driverID, vehicleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
