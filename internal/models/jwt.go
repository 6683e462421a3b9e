package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the claims carried by an access token
type JWTClaims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthResponse is returned after a successful login or registration
type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	User        *UserWithProfile `json:"user"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
