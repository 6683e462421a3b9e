package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/services"
	"go.uber.org/zap"
)

// CreateFavoriteAddress godoc
// @Summary Save a favorite address
// @Tags favorite-addresses
// @Accept json
// @Produce json
// @Param request body models.CreateFavoriteAddressRequest true "Address data"
// @Success 201 {object} models.FavoriteAddress
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /favorite-addresses [post]
func CreateFavoriteAddress(c *gin.Context) {
	var req models.CreateFavoriteAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	address, err := services.FavoriteAddressServiceInstance.CreateFavoriteAddress(c.Request.Context(), req)
	if err != nil {
		if err != models.ErrUserNotFound && err != models.ErrInvalidObjectID {
			logging.Logger.Error("failed to create favorite address", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// GetFavoriteAddress godoc
// @Summary Get a favorite address
// @Tags favorite-addresses
// @Produce json
// @Param id path string true "Favorite address ID"
// @Success 200 {object} models.FavoriteAddress
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /favorite-addresses/{id} [get]
func GetFavoriteAddress(c *gin.Context) {
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := services.FavoriteAddressServiceInstance.GetFavoriteAddress(c.Request.Context(), addressID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

// ListUserFavoriteAddresses godoc
// @Summary List a user's favorite addresses
// @Tags favorite-addresses
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.FavoriteAddress
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/favorite-addresses [get]
func ListUserFavoriteAddresses(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	addresses, err := services.FavoriteAddressServiceInstance.ListFavoriteAddressesByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// UpdateFavoriteAddress godoc
// @Summary Update a favorite address
// @Tags favorite-addresses
// @Accept json
// @Produce json
// @Param id path string true "Favorite address ID"
// @Param request body models.UpdateFavoriteAddressRequest true "Fields to update"
// @Success 200 {object} models.FavoriteAddress
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /favorite-addresses/{id} [put]
func UpdateFavoriteAddress(c *gin.Context) {
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFavoriteAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	address, err := services.FavoriteAddressServiceInstance.UpdateFavoriteAddress(c.Request.Context(), addressID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

// DeleteFavoriteAddress godoc
// @Summary Delete a favorite address
// @Tags favorite-addresses
// @Param id path string true "Favorite address ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /favorite-addresses/{id} [delete]
func DeleteFavoriteAddress(c *gin.Context) {
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.FavoriteAddressServiceInstance.DeleteFavoriteAddress(c.Request.Context(), addressID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
