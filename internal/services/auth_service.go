package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Global auth service instance
var AuthServiceInstance *AuthService

// AuthService issues and validates access tokens
type AuthService struct {
	users     *UserService
	jwtSecret []byte
	jwtTTL    time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(users *UserService, jwtSecret string, jwtTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
		logger:    logger,
	}
}

// InitAuthService initializes the global auth service instance
func InitAuthService() {
	logger := zap.L().Named("auth_service")
	AuthServiceInstance = NewAuthService(UserServiceInstance, config.AppConfig.JWTSecret, config.AppConfig.JWTTTL, logger)
	logger.Info("auth service initialized successfully", zap.Duration("token_ttl", config.AppConfig.JWTTTL))
}

// Register creates the account and answers with a token so clients can
// act immediately after signup
func (s *AuthService) Register(ctx context.Context, req models.CreateUserRequest) (*models.AuthResponse, error) {
	user, err := s.users.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{AccessToken: token, User: user}, nil
}

// Login authenticates email and password and issues a token
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "login")
	defer span.End()

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err == models.ErrUserNotFound {
			// Same answer as a wrong password, so probes learn nothing
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Info("login rejected", zap.String("email", req.Email))
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	withProfile, err := s.users.GetUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{AccessToken: token, User: withProfile}, nil
}

// GenerateToken signs an HS256 access token for the user
func (s *AuthService) GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := models.JWTClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates an access token
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
