package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/services"
	"go.uber.org/zap"
)

// Register godoc
// @Summary Register a new user
// @Description Creates a user account with an optional role profile and answers with an access token. Passenger registrations are scheduled for CPF verification.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "Registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := services.AuthServiceInstance.Register(c.Request.Context(), req)
	if err != nil {
		if err == models.ErrEmailAlreadyExists || err == models.ErrInvalidCPF {
			respondServiceError(c, err)
			return
		}
		logging.Logger.Error("registration failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Description Authenticates email and password and answers with an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := services.AuthServiceInstance.Login(c.Request.Context(), req)
	if err != nil {
		if err != models.ErrInvalidCredentials {
			logging.Logger.Error("login failed", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
