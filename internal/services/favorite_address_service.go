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

// Global favorite address service instance
var FavoriteAddressServiceInstance *FavoriteAddressService

// FavoriteAddressService manages saved address shortcuts
type FavoriteAddressService struct {
	database *mongo.Database
	logger   *zap.Logger
}

// NewFavoriteAddressService creates a new favorite address service instance
func NewFavoriteAddressService(database *mongo.Database, logger *zap.Logger) *FavoriteAddressService {
	return &FavoriteAddressService{
		database: database,
		logger:   logger,
	}
}

// InitFavoriteAddressService initializes the global favorite address service instance
func InitFavoriteAddressService() {
	logger := zap.L().Named("favorite_address_service")
	FavoriteAddressServiceInstance = NewFavoriteAddressService(config.MongoDB, logger)
	logger.Info("favorite address service initialized successfully")
}

// CreateFavoriteAddress saves an address shortcut for a user
func (s *FavoriteAddressService) CreateFavoriteAddress(ctx context.Context, req models.CreateFavoriteAddressRequest) (*models.FavoriteAddress, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "create_favorite_address")
	defer span.End()

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, models.ErrInvalidObjectID
	}

	count, err := s.database.Collection(config.AppConfig.UserCollection).
		CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if count == 0 {
		return nil, models.ErrUserNotFound
	}

	now := time.Now().UTC()
	address := models.FavoriteAddress{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Label:        req.Label,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.database.Collection(config.AppConfig.FavoriteAddressCollection).InsertOne(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to insert favorite address: %w", err)
	}

	return &address, nil
}

// GetFavoriteAddress returns a favorite address by ID
func (s *FavoriteAddressService) GetFavoriteAddress(ctx context.Context, addressID primitive.ObjectID) (*models.FavoriteAddress, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.FavoriteAddressCollection, "_id")
	defer span.End()

	var address models.FavoriteAddress
	err := s.database.Collection(config.AppConfig.FavoriteAddressCollection).
		FindOne(ctx, bson.M{"_id": addressID}).Decode(&address)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrFavoriteAddressNotFound
		}
		return nil, fmt.Errorf("failed to load favorite address: %w", err)
	}

	return &address, nil
}

// ListFavoriteAddressesByUser returns a user's saved addresses
func (s *FavoriteAddressService) ListFavoriteAddressesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.FavoriteAddress, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.FavoriteAddressCollection, "user_id")
	defer span.End()

	cursor, err := s.database.Collection(config.AppConfig.FavoriteAddressCollection).
		Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite addresses: %w", err)
	}
	defer cursor.Close(ctx)

	var addresses []models.FavoriteAddress
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode favorite addresses: %w", err)
	}

	return addresses, nil
}

// UpdateFavoriteAddress applies a partial update to a favorite address
func (s *FavoriteAddressService) UpdateFavoriteAddress(ctx context.Context, addressID primitive.ObjectID, req models.UpdateFavoriteAddressRequest) (*models.FavoriteAddress, error) {
	ctx, span := utils.TraceDatabaseUpdate(ctx, config.AppConfig.FavoriteAddressCollection, "_id", false)
	defer span.End()

	update := bson.M{}
	if req.Label != "" {
		update["label"] = req.Label
	}
	if req.Street != "" {
		update["street"] = req.Street
	}
	if req.Number != "" {
		update["number"] = req.Number
	}
	if req.Complement != nil {
		update["complement"] = req.Complement
	}
	if req.Neighborhood != "" {
		update["neighborhood"] = req.Neighborhood
	}
	if req.City != "" {
		update["city"] = req.City
	}
	if req.State != "" {
		update["state"] = req.State
	}
	if req.ZipCode != "" {
		update["zip_code"] = req.ZipCode
	}
	if req.Latitude != nil {
		update["latitude"] = req.Latitude
	}
	if req.Longitude != nil {
		update["longitude"] = req.Longitude
	}

	if len(update) > 0 {
		update["updated_at"] = time.Now().UTC()
		res, err := s.database.Collection(config.AppConfig.FavoriteAddressCollection).
			UpdateOne(ctx, bson.M{"_id": addressID}, bson.M{"$set": update})
		if err != nil {
			return nil, fmt.Errorf("failed to update favorite address: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, models.ErrFavoriteAddressNotFound
		}
	}

	return s.GetFavoriteAddress(ctx, addressID)
}

// DeleteFavoriteAddress removes a favorite address
func (s *FavoriteAddressService) DeleteFavoriteAddress(ctx context.Context, addressID primitive.ObjectID) error {
	res, err := s.database.Collection(config.AppConfig.FavoriteAddressCollection).
		DeleteOne(ctx, bson.M{"_id": addressID})
	if err != nil {
		return fmt.Errorf("failed to delete favorite address: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrFavoriteAddressNotFound
	}
	return nil
}
