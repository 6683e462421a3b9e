package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/services"
	"go.uber.org/zap"
)

// ListPassengers godoc
// @Summary List passengers
// @Tags passengers
// @Produce json
// @Success 200 {array} models.Passenger
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /passengers [get]
func ListPassengers(c *gin.Context) {
	passengers, err := services.PassengerServiceInstance.ListPassengers(c.Request.Context())
	if err != nil {
		logging.Logger.Error("failed to list passengers", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, passengers)
}

// GetPassenger godoc
// @Summary Get a passenger
// @Description Returns the passenger joined with its owning user and trip history
// @Tags passengers
// @Produce json
// @Param id path string true "Passenger ID"
// @Success 200 {object} services.PassengerDetails
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /passengers/{id} [get]
func GetPassenger(c *gin.Context) {
	passengerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := services.PassengerServiceInstance.GetPassengerDetails(c.Request.Context(), passengerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// DeletePassenger godoc
// @Summary Delete a passenger profile
// @Tags passengers
// @Param id path string true "Passenger ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /passengers/{id} [delete]
func DeletePassenger(c *gin.Context) {
	passengerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.PassengerServiceInstance.DeletePassenger(c.Request.Context(), passengerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestPassengerVerification godoc
// @Summary Request CPF verification
// @Description Schedules a fresh CPF verification attempt for the passenger. The outcome lands asynchronously in the audit trail and trust state.
// @Tags passengers
// @Param id path string true "Passenger ID"
// @Success 202 "Accepted"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /passengers/{id}/verify [post]
func RequestPassengerVerification(c *gin.Context) {
	passengerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.PassengerServiceInstance.RequestVerification(c.Request.Context(), passengerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

// GetPassengerVerifications godoc
// @Summary Get the verification audit trail
// @Description Returns the passenger's CPF verification records, newest first
// @Tags passengers
// @Produce json
// @Param id path string true "Passenger ID"
// @Success 200 {array} models.CPFVerification
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /passengers/{id}/verifications [get]
func GetPassengerVerifications(c *gin.Context) {
	passengerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	records, err := services.CPFVerificationServiceInstance.VerificationHistory(c.Request.Context(), passengerID)
	if err != nil {
		logging.Logger.Error("failed to load verification history", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
