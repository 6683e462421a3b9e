package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/observability"
	"github.com/toinu/ride-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Global passenger service instance
var PassengerServiceInstance *PassengerService

// PassengerDetails joins a passenger with its owning user and trips
type PassengerDetails struct {
	Passenger models.Passenger `json:"passenger"`
	User      *models.User     `json:"user,omitempty"`
	Trips     []models.Trip    `json:"trips"`
}

// PassengerService reads passenger profiles. Trust-state fields are
// owned by the verification workflow; this service only caches and
// serves them.
type PassengerService struct {
	database *mongo.Database
	queue    *VerificationQueue
	logger   *zap.Logger
}

// NewPassengerService creates a new passenger service instance
func NewPassengerService(database *mongo.Database, queue *VerificationQueue, logger *zap.Logger) *PassengerService {
	return &PassengerService{
		database: database,
		queue:    queue,
		logger:   logger,
	}
}

// InitPassengerService initializes the global passenger service instance
func InitPassengerService() {
	logger := zap.L().Named("passenger_service")
	PassengerServiceInstance = NewPassengerService(config.MongoDB, VerificationQueueInstance, logger)
	logger.Info("passenger service initialized successfully")
}

// GetPassenger returns a passenger, read-through cached in Redis. The
// verification workflow invalidates the entry when it commits.
func (s *PassengerService) GetPassenger(ctx context.Context, passengerID primitive.ObjectID) (*models.Passenger, error) {
	cacheKey := fmt.Sprintf("passenger:%s", passengerID.Hex())

	if config.Redis != nil {
		cacheCtx, span := utils.TraceCacheGet(ctx, cacheKey)
		cached, err := config.Redis.Get(cacheCtx, cacheKey).Result()
		span.End()
		if err == nil {
			var passenger models.Passenger
			if err := json.Unmarshal([]byte(cached), &passenger); err == nil {
				observability.CacheHits.WithLabelValues("passenger_get").Inc()
				return &passenger, nil
			}
			s.logger.Warn("failed to decode cached passenger, falling back to database",
				zap.String("cache_key", cacheKey))
		}
	}

	findCtx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.PassengerCollection, "_id")
	defer span.End()

	var passenger models.Passenger
	err := s.database.Collection(config.AppConfig.PassengerCollection).
		FindOne(findCtx, bson.M{"_id": passengerID}).Decode(&passenger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrPassengerNotFound
		}
		return nil, fmt.Errorf("failed to load passenger: %w", err)
	}

	s.cachePassenger(ctx, cacheKey, &passenger)

	return &passenger, nil
}

// cachePassenger stores the passenger in Redis with the configured TTL
func (s *PassengerService) cachePassenger(ctx context.Context, cacheKey string, passenger *models.Passenger) {
	if config.Redis == nil {
		return
	}

	payload, err := json.Marshal(passenger)
	if err != nil {
		s.logger.Warn("failed to encode passenger for cache", zap.Error(err))
		return
	}

	cacheCtx, span := utils.TraceCacheSet(ctx, cacheKey, config.AppConfig.RedisTTL)
	defer span.End()

	if err := config.Redis.Set(cacheCtx, cacheKey, payload, config.AppConfig.RedisTTL).Err(); err != nil {
		s.logger.Warn("failed to cache passenger", zap.String("cache_key", cacheKey), zap.Error(err))
	}
}

// GetPassengerDetails joins the passenger with its user and trip history
func (s *PassengerService) GetPassengerDetails(ctx context.Context, passengerID primitive.ObjectID) (*PassengerDetails, error) {
	passenger, err := s.GetPassenger(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	details := &PassengerDetails{Passenger: *passenger, Trips: []models.Trip{}}

	var user models.User
	err = s.database.Collection(config.AppConfig.UserCollection).
		FindOne(ctx, bson.M{"_id": passenger.UserID}).Decode(&user)
	if err == nil {
		details.User = &user
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.database.Collection(config.AppConfig.TripCollection).
		Find(ctx, bson.M{"passenger_id": passengerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &details.Trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}

	return details, nil
}

// ListPassengers returns all passengers
func (s *PassengerService) ListPassengers(ctx context.Context) ([]models.Passenger, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.PassengerCollection, "all")
	defer span.End()

	cursor, err := s.database.Collection(config.AppConfig.PassengerCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list passengers: %w", err)
	}
	defer cursor.Close(ctx)

	var passengers []models.Passenger
	if err := cursor.All(ctx, &passengers); err != nil {
		return nil, fmt.Errorf("failed to decode passengers: %w", err)
	}

	return passengers, nil
}

// DeletePassenger removes a passenger profile and its cache entry
func (s *PassengerService) DeletePassenger(ctx context.Context, passengerID primitive.ObjectID) error {
	res, err := s.database.Collection(config.AppConfig.PassengerCollection).
		DeleteOne(ctx, bson.M{"_id": passengerID})
	if err != nil {
		return fmt.Errorf("failed to delete passenger: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrPassengerNotFound
	}

	if config.Redis != nil {
		cacheKey := fmt.Sprintf("passenger:%s", passengerID.Hex())
		cacheCtx, span := utils.TraceCacheInvalidation(ctx, cacheKey)
		defer span.End()
		if err := config.Redis.Del(cacheCtx, cacheKey).Err(); err != nil {
			s.logger.Warn("failed to invalidate passenger cache", zap.Error(err))
		}
	}

	return nil
}

// RequestVerification enqueues a fresh verification attempt. The
// passenger must exist; the outcome lands asynchronously in the audit
// trail and trust state.
func (s *PassengerService) RequestVerification(ctx context.Context, passengerID primitive.ObjectID) error {
	count, err := s.database.Collection(config.AppConfig.PassengerCollection).
		CountDocuments(ctx, bson.M{"_id": passengerID})
	if err != nil {
		return fmt.Errorf("failed to load passenger: %w", err)
	}
	if count == 0 {
		return models.ErrPassengerNotFound
	}

	if s.queue == nil {
		return fmt.Errorf("verification queue is not running")
	}

	return s.queue.Enqueue(VerificationJob{
		PassengerID: passengerID.Hex(),
		Trigger:     "manual_request",
		EnqueuedAt:  time.Now(),
	})
}
