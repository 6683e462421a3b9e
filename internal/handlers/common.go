package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// parseIDParam parses an ObjectID path parameter, answering 400 itself
// when the value is malformed
func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// primitiveIDFromQuery parses an ObjectID query parameter, answering
// 400 itself when the value is malformed
func primitiveIDFromQuery(c *gin.Context, hex, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " format"})
		return primitive.NilObjectID, err
	}
	return id, nil
}

// respondServiceError maps service sentinel errors to HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrPassengerNotFound),
		errors.Is(err, models.ErrDriverNotFound),
		errors.Is(err, models.ErrVehicleNotFound),
		errors.Is(err, models.ErrTripNotFound),
		errors.Is(err, models.ErrFavoriteAddressNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrInvalidCPF),
		errors.Is(err, models.ErrInvalidObjectID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
