package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/services"
	"go.uber.org/zap"
)

// CreateVehicle godoc
// @Summary Register a vehicle
// @Description Registers a vehicle for a driver. The driver's first vehicle becomes active automatically.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param request body models.CreateVehicleRequest true "Vehicle data"
// @Success 201 {object} models.Vehicle
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Driver not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles [post]
func CreateVehicle(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := services.VehicleServiceInstance.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		if err != models.ErrDriverNotFound && err != models.ErrInvalidObjectID {
			logging.Logger.Error("failed to create vehicle", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// ListVehicles godoc
// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Success 200 {array} models.Vehicle
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles [get]
func ListVehicles(c *gin.Context) {
	vehicles, err := services.VehicleServiceInstance.ListVehicles(c.Request.Context())
	if err != nil {
		logging.Logger.Error("failed to list vehicles", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle godoc
// @Summary Get a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} models.Vehicle
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func GetVehicle(c *gin.Context) {
	vehicleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := services.VehicleServiceInstance.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle godoc
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body models.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} models.Vehicle
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [put]
func UpdateVehicle(c *gin.Context) {
	vehicleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := services.VehicleServiceInstance.UpdateVehicle(c.Request.Context(), vehicleID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle godoc
// @Summary Delete a vehicle
// @Tags vehicles
// @Param id path string true "Vehicle ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [delete]
func DeleteVehicle(c *gin.Context) {
	vehicleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.VehicleServiceInstance.DeleteVehicle(c.Request.Context(), vehicleID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
