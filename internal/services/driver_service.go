package services

import (
	"context"
	"fmt"
	"time"

	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Global driver service instance
var DriverServiceInstance *DriverService

// DriverService reads and updates driver profiles
type DriverService struct {
	database *mongo.Database
	logger   *zap.Logger
}

// NewDriverService creates a new driver service instance
func NewDriverService(database *mongo.Database, logger *zap.Logger) *DriverService {
	return &DriverService{
		database: database,
		logger:   logger,
	}
}

// InitDriverService initializes the global driver service instance
func InitDriverService() {
	logger := zap.L().Named("driver_service")
	DriverServiceInstance = NewDriverService(config.MongoDB, logger)
	logger.Info("driver service initialized successfully")
}

// GetDriver returns a driver by ID
func (s *DriverService) GetDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Driver, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.DriverCollection, "_id")
	defer span.End()

	var driver models.Driver
	err := s.database.Collection(config.AppConfig.DriverCollection).
		FindOne(ctx, bson.M{"_id": driverID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to load driver: %w", err)
	}

	return &driver, nil
}

// ListDrivers returns all drivers
func (s *DriverService) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.DriverCollection, "all")
	defer span.End()

	cursor, err := s.database.Collection(config.AppConfig.DriverCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer cursor.Close(ctx)

	var drivers []models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, fmt.Errorf("failed to decode drivers: %w", err)
	}

	return drivers, nil
}

// UpdateDriver applies a partial update to a driver's license data
func (s *DriverService) UpdateDriver(ctx context.Context, driverID primitive.ObjectID, req models.UpdateDriverRequest) (*models.Driver, error) {
	ctx, span := utils.TraceDatabaseUpdate(ctx, config.AppConfig.DriverCollection, "_id", false)
	defer span.End()

	update := bson.M{}
	if req.CNH != "" {
		update["cnh"] = req.CNH
	}
	if req.CNHExpiration != nil {
		update["cnh_expiration"] = *req.CNHExpiration
	}

	if len(update) > 0 {
		update["updated_at"] = time.Now().UTC()
		res, err := s.database.Collection(config.AppConfig.DriverCollection).
			UpdateOne(ctx, bson.M{"_id": driverID}, bson.M{"$set": update})
		if err != nil {
			return nil, fmt.Errorf("failed to update driver: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, models.ErrDriverNotFound
		}
	}

	return s.GetDriver(ctx, driverID)
}

// DeleteDriver removes a driver and its vehicles in one transaction
func (s *DriverService) DeleteDriver(ctx context.Context, driverID primitive.ObjectID) error {
	ctx, span := utils.TraceDatabaseTransaction(ctx, "delete_driver")
	defer span.End()

	count, err := s.database.Collection(config.AppConfig.DriverCollection).
		CountDocuments(ctx, bson.M{"_id": driverID})
	if err != nil {
		return fmt.Errorf("failed to load driver: %w", err)
	}
	if count == 0 {
		return models.ErrDriverNotFound
	}

	err = utils.ExecuteWithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.database.Collection(config.AppConfig.DriverCollection).DeleteOne(sessCtx, bson.M{"_id": driverID}); err != nil {
			return fmt.Errorf("failed to delete driver: %w", err)
		}
		if _, err := s.database.Collection(config.AppConfig.VehicleCollection).DeleteMany(sessCtx, bson.M{"driver_id": driverID}); err != nil {
			return fmt.Errorf("failed to delete driver vehicles: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("driver deleted", zap.String("driver_id", driverID.Hex()))
	return nil
}
