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
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Global trip service instance
var TripServiceInstance *TripService

// TripService records trips between passengers and drivers. Matching
// and dispatch live elsewhere; a created trip starts REQUESTED.
type TripService struct {
	database *mongo.Database
	logger   *zap.Logger
}

// NewTripService creates a new trip service instance
func NewTripService(database *mongo.Database, logger *zap.Logger) *TripService {
	return &TripService{
		database: database,
		logger:   logger,
	}
}

// InitTripService initializes the global trip service instance
func InitTripService() {
	logger := zap.L().Named("trip_service")
	TripServiceInstance = NewTripService(config.MongoDB, logger)
	logger.Info("trip service initialized successfully")
}

// CreateTrip records a trip request between a passenger and a driver
func (s *TripService) CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "create_trip")
	defer span.End()

	passengerID, err := primitive.ObjectIDFromHex(req.PassengerID)
	if err != nil {
		return nil, models.ErrInvalidObjectID
	}
	driverID, err := primitive.ObjectIDFromHex(req.DriverID)
	if err != nil {
		return nil, models.ErrInvalidObjectID
	}

	count, err := s.database.Collection(config.AppConfig.PassengerCollection).
		CountDocuments(ctx, bson.M{"_id": passengerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load passenger: %w", err)
	}
	if count == 0 {
		return nil, models.ErrPassengerNotFound
	}

	count, err = s.database.Collection(config.AppConfig.DriverCollection).
		CountDocuments(ctx, bson.M{"_id": driverID})
	if err != nil {
		return nil, fmt.Errorf("failed to load driver: %w", err)
	}
	if count == 0 {
		return nil, models.ErrDriverNotFound
	}

	now := time.Now().UTC()
	trip := models.Trip{
		ID:          primitive.NewObjectID(),
		DriverID:    driverID,
		PassengerID: passengerID,
		Origin:      req.Origin,
		Destination: req.Destination,
		Status:      models.TripStatusRequested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.database.Collection(config.AppConfig.TripCollection).InsertOne(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to insert trip: %w", err)
	}

	s.logger.Info("trip created",
		zap.String("trip_id", trip.ID.Hex()),
		zap.String("passenger_id", passengerID.Hex()),
		zap.String("driver_id", driverID.Hex()))

	return &trip, nil
}

// GetTrip returns a trip by ID
func (s *TripService) GetTrip(ctx context.Context, tripID primitive.ObjectID) (*models.Trip, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.TripCollection, "_id")
	defer span.End()

	var trip models.Trip
	err := s.database.Collection(config.AppConfig.TripCollection).
		FindOne(ctx, bson.M{"_id": tripID}).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to load trip: %w", err)
	}

	return &trip, nil
}

// ListTrips returns all trips, newest first
func (s *TripService) ListTrips(ctx context.Context) ([]models.Trip, error) {
	return s.findTrips(ctx, bson.M{})
}

// ListTripsByPassenger returns a passenger's trips, newest first
func (s *TripService) ListTripsByPassenger(ctx context.Context, passengerID primitive.ObjectID) ([]models.Trip, error) {
	return s.findTrips(ctx, bson.M{"passenger_id": passengerID})
}

// ListTripsByDriver returns a driver's trips, newest first
func (s *TripService) ListTripsByDriver(ctx context.Context, driverID primitive.ObjectID) ([]models.Trip, error) {
	return s.findTrips(ctx, bson.M{"driver_id": driverID})
}

func (s *TripService) findTrips(ctx context.Context, filter bson.M) ([]models.Trip, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.TripCollection, "filter")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.database.Collection(config.AppConfig.TripCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}

	return trips, nil
}
