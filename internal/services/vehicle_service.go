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

// Global vehicle service instance
var VehicleServiceInstance *VehicleService

// VehicleService manages driver vehicles. A driver has at most one
// active vehicle at a time.
type VehicleService struct {
	database *mongo.Database
	logger   *zap.Logger
}

// NewVehicleService creates a new vehicle service instance
func NewVehicleService(database *mongo.Database, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		database: database,
		logger:   logger,
	}
}

// InitVehicleService initializes the global vehicle service instance
func InitVehicleService() {
	logger := zap.L().Named("vehicle_service")
	VehicleServiceInstance = NewVehicleService(config.MongoDB, logger)
	logger.Info("vehicle service initialized successfully")
}

// CreateVehicle registers a vehicle for a driver. The driver's first
// vehicle becomes active automatically.
func (s *VehicleService) CreateVehicle(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "create_vehicle")
	defer span.End()

	driverID, err := primitive.ObjectIDFromHex(req.DriverID)
	if err != nil {
		return nil, models.ErrInvalidObjectID
	}

	count, err := s.database.Collection(config.AppConfig.DriverCollection).
		CountDocuments(ctx, bson.M{"_id": driverID})
	if err != nil {
		return nil, fmt.Errorf("failed to load driver: %w", err)
	}
	if count == 0 {
		return nil, models.ErrDriverNotFound
	}

	existing, err := s.database.Collection(config.AppConfig.VehicleCollection).
		CountDocuments(ctx, bson.M{"driver_id": driverID})
	if err != nil {
		return nil, fmt.Errorf("failed to count driver vehicles: %w", err)
	}

	now := time.Now().UTC()
	vehicle := models.Vehicle{
		ID:                primitive.NewObjectID(),
		DriverID:          driverID,
		Brand:             req.Brand,
		Model:             req.Model,
		YearOfManufacture: req.YearOfManufacture,
		YearOfModel:       req.YearOfModel,
		Renavam:           req.Renavam,
		LicensePlate:      req.LicensePlate,
		Color:             req.Color,
		IsActive:          existing == 0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := s.database.Collection(config.AppConfig.VehicleCollection).InsertOne(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to insert vehicle: %w", err)
	}

	s.logger.Info("vehicle created",
		zap.String("vehicle_id", vehicle.ID.Hex()),
		zap.String("driver_id", driverID.Hex()),
		zap.Bool("is_active", vehicle.IsActive))

	return &vehicle, nil
}

// GetVehicle returns a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID primitive.ObjectID) (*models.Vehicle, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.VehicleCollection, "_id")
	defer span.End()

	var vehicle models.Vehicle
	err := s.database.Collection(config.AppConfig.VehicleCollection).
		FindOne(ctx, bson.M{"_id": vehicleID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}

	return &vehicle, nil
}

// ListVehicles returns all vehicles
func (s *VehicleService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.findVehicles(ctx, bson.M{})
}

// ListVehiclesByDriver returns the vehicles registered by a driver
func (s *VehicleService) ListVehiclesByDriver(ctx context.Context, driverID primitive.ObjectID) ([]models.Vehicle, error) {
	return s.findVehicles(ctx, bson.M{"driver_id": driverID})
}

func (s *VehicleService) findVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.VehicleCollection, "filter")
	defer span.End()

	cursor, err := s.database.Collection(config.AppConfig.VehicleCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}

	return vehicles, nil
}

// UpdateVehicle applies a partial update to a vehicle
func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicleID primitive.ObjectID, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	ctx, span := utils.TraceDatabaseUpdate(ctx, config.AppConfig.VehicleCollection, "_id", false)
	defer span.End()

	update := bson.M{}
	if req.Brand != "" {
		update["brand"] = req.Brand
	}
	if req.Model != "" {
		update["model"] = req.Model
	}
	if req.YearOfManufacture != 0 {
		update["year_of_manufacture"] = req.YearOfManufacture
	}
	if req.YearOfModel != 0 {
		update["year_of_model"] = req.YearOfModel
	}
	if req.Renavam != "" {
		update["renavam"] = req.Renavam
	}
	if req.LicensePlate != "" {
		update["license_plate"] = req.LicensePlate
	}
	if req.Color != "" {
		update["color"] = req.Color
	}

	if len(update) > 0 {
		update["updated_at"] = time.Now().UTC()
		res, err := s.database.Collection(config.AppConfig.VehicleCollection).
			UpdateOne(ctx, bson.M{"_id": vehicleID}, bson.M{"$set": update})
		if err != nil {
			return nil, fmt.Errorf("failed to update vehicle: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, models.ErrVehicleNotFound
		}
	}

	return s.GetVehicle(ctx, vehicleID)
}

// DeleteVehicle removes a vehicle
func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicleID primitive.ObjectID) error {
	res, err := s.database.Collection(config.AppConfig.VehicleCollection).
		DeleteOne(ctx, bson.M{"_id": vehicleID})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrVehicleNotFound
	}
	return nil
}

// SelectActiveVehicle makes the given vehicle the driver's active one
// and deactivates the rest. Both writes commit in one transaction so
// the driver never shows two active vehicles.
func (s *VehicleService) SelectActiveVehicle(ctx context.Context, driverID, vehicleID primitive.ObjectID) (*models.Vehicle, error) {
	ctx, span := utils.TraceDatabaseTransaction(ctx, "select_active_vehicle")
	defer span.End()

	var vehicle models.Vehicle
	err := s.database.Collection(config.AppConfig.VehicleCollection).
		FindOne(ctx, bson.M{"_id": vehicleID, "driver_id": driverID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}

	now := time.Now().UTC()
	err = utils.ExecuteWithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.database.Collection(config.AppConfig.VehicleCollection).UpdateMany(
			sessCtx,
			bson.M{"driver_id": driverID, "_id": bson.M{"$ne": vehicleID}},
			bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
		); err != nil {
			return fmt.Errorf("failed to deactivate vehicles: %w", err)
		}
		if _, err := s.database.Collection(config.AppConfig.VehicleCollection).UpdateOne(
			sessCtx,
			bson.M{"_id": vehicleID},
			bson.M{"$set": bson.M{"is_active": true, "updated_at": now}},
		); err != nil {
			return fmt.Errorf("failed to activate vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetVehicle(ctx, vehicleID)
}
