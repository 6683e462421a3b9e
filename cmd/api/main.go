package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/handlers"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/middleware"
	"github.com/toinu/ride-api/internal/observability"
	"github.com/toinu/ride-api/internal/services"
	"go.uber.org/zap"

	_ "github.com/toinu/ride-api/docs"
)

// @title           Ride API
// @version         1.0
// @description     Ride-hailing marketplace API. Passengers and drivers register with role profiles; passenger identities are verified against the federal CPF registry before they may request rides.

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Registration and login

// @tag.name passengers
// @tag.description Passenger profiles and CPF verification

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	config.InitMongoDB()
	config.InitRedis()

	// Initialize services; the verification queue must exist before the
	// services that enqueue into it
	services.InitCPFVerificationService()
	services.VerificationQueueInstance = services.NewVerificationQueue(
		services.CPFVerificationServiceInstance,
		config.AppConfig.VerificationWorkers,
		config.AppConfig.VerificationQueueSize,
	)
	services.InitUserService()
	services.InitAuthService()
	services.InitPassengerService()
	services.InitDriverService()
	services.InitVehicleService()
	services.InitTripService()
	services.InitFavoriteAddressService()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		v1.POST("/auth/register", handlers.Register)
		v1.POST("/auth/login", handlers.Login)

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/users", handlers.CreateUser)
			authed.GET("/users", handlers.ListUsers)
			authed.GET("/users/:id", handlers.GetUser)
			authed.PUT("/users/:id", handlers.UpdateUser)
			authed.DELETE("/users/:id", handlers.DeleteUser)
			authed.GET("/users/:id/favorite-addresses", handlers.ListUserFavoriteAddresses)

			authed.GET("/passengers", handlers.ListPassengers)
			authed.GET("/passengers/:id", handlers.GetPassenger)
			authed.DELETE("/passengers/:id", handlers.DeletePassenger)
			authed.POST("/passengers/:id/verify", handlers.RequestPassengerVerification)
			authed.GET("/passengers/:id/verifications", handlers.GetPassengerVerifications)

			authed.GET("/drivers", handlers.ListDrivers)
			authed.GET("/drivers/:id", handlers.GetDriver)
			authed.PUT("/drivers/:id", handlers.UpdateDriver)
			authed.DELETE("/drivers/:id", handlers.DeleteDriver)
			authed.GET("/drivers/:id/vehicles", handlers.ListDriverVehicles)
			authed.PUT("/drivers/:id/vehicles/active", middleware.RequireDriver(), handlers.SelectActiveVehicle)

			authed.POST("/vehicles", handlers.CreateVehicle)
			authed.GET("/vehicles", handlers.ListVehicles)
			authed.GET("/vehicles/:id", handlers.GetVehicle)
			authed.PUT("/vehicles/:id", handlers.UpdateVehicle)
			authed.DELETE("/vehicles/:id", handlers.DeleteVehicle)

			authed.POST("/trips", middleware.RequirePassenger(), handlers.CreateTrip)
			authed.GET("/trips", handlers.ListTrips)
			authed.GET("/trips/:id", handlers.GetTrip)

			authed.POST("/favorite-addresses", handlers.CreateFavoriteAddress)
			authed.GET("/favorite-addresses/:id", handlers.GetFavoriteAddress)
			authed.PUT("/favorite-addresses/:id", handlers.UpdateFavoriteAddress)
			authed.DELETE("/favorite-addresses/:id", handlers.DeleteFavoriteAddress)

			authed.GET("/queue/stats", handlers.QueueStats)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown; drain the verification queue before closing
	// database connections
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	services.VerificationQueueInstance.Stop()

	logging.Logger.Info("server exited gracefully")
}
