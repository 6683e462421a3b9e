package services

import (
	"context"
	"fmt"
	"time"

	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/observability"
	"github.com/toinu/ride-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Global user service instance
var UserServiceInstance *UserService

// UserService manages accounts and their role profiles. Creating or
// re-tagging a passenger profile schedules CPF verification; the
// service never touches trust-state fields directly.
type UserService struct {
	database *mongo.Database
	queue    *VerificationQueue
	logger   *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService(database *mongo.Database, queue *VerificationQueue, logger *zap.Logger) *UserService {
	return &UserService{
		database: database,
		queue:    queue,
		logger:   logger,
	}
}

// InitUserService initializes the global user service instance
func InitUserService() {
	logger := zap.L().Named("user_service")
	UserServiceInstance = NewUserService(config.MongoDB, VerificationQueueInstance, logger)
	logger.Info("user service initialized successfully")
}

// CreateUser registers a user and, when a role is given, its profile.
// Passenger profiles start PENDING_VERIFICATION and get a verification
// job enqueued after the commit.
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.UserWithProfile, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "create_user")
	defer span.End()

	logger := s.logger.With(zap.String("email", req.Email))

	count, err := s.database.Collection(config.AppConfig.UserCollection).
		CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if count > 0 {
		return nil, models.ErrEmailAlreadyExists
	}

	user, err := s.buildUser(req)
	if err != nil {
		return nil, err
	}

	var profile *models.Profile
	err = utils.ExecuteWithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.database.Collection(config.AppConfig.UserCollection).InsertOne(sessCtx, user); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		profile, err = s.createProfile(sessCtx, user, req)
		return err
	})
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("create_user", "error").Inc()
		return nil, err
	}
	observability.DatabaseOperations.WithLabelValues("create_user", "success").Inc()

	if profile != nil && profile.Role == models.UserRolePassenger {
		s.scheduleVerification(profile.Passenger.ID, "registration")
	}

	logger.Info("user created", zap.String("user_id", user.ID.Hex()))

	return &models.UserWithProfile{User: *user, Profile: profile}, nil
}

// buildUser validates and assembles a new user document
func (s *UserService) buildUser(req models.CreateUserRequest) (*models.User, error) {
	now := time.Now().UTC()

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		FullName:  req.FullName,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	if req.Phone != "" {
		phone, err := utils.NormalizePhoneNumber(req.Phone)
		if err != nil {
			return nil, fmt.Errorf("invalid phone number: %w", err)
		}
		user.Phone = phone
	}

	if req.CPF != "" {
		cpf := utils.NormalizeCPF(req.CPF)
		if !utils.ValidateCPF(cpf) {
			return nil, models.ErrInvalidCPF
		}
		user.CPF = cpf
	}

	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("invalid birth date: %w", err)
		}
		user.BirthDate = &birthDate
	}

	return user, nil
}

// createProfile inserts the role profile matching the request. Drivers
// may register a first vehicle in the same transaction.
func (s *UserService) createProfile(sessCtx mongo.SessionContext, user *models.User, req models.CreateUserRequest) (*models.Profile, error) {
	now := time.Now().UTC()

	switch req.Role {
	case models.UserRolePassenger:
		passenger := models.Passenger{
			ID:        primitive.NewObjectID(),
			UserID:    user.ID,
			Status:    models.PassengerStatusPendingVerification,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.database.Collection(config.AppConfig.PassengerCollection).InsertOne(sessCtx, passenger); err != nil {
			return nil, fmt.Errorf("failed to insert passenger profile: %w", err)
		}
		return &models.Profile{Role: models.UserRolePassenger, Passenger: &passenger}, nil

	case models.UserRoleDriver:
		driver := models.Driver{
			ID:        primitive.NewObjectID(),
			UserID:    user.ID,
			CNH:       req.CNH,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.CNHExp != "" {
			exp, err := time.Parse("2006-01-02", req.CNHExp)
			if err != nil {
				return nil, fmt.Errorf("invalid CNH expiration date: %w", err)
			}
			driver.CNHExpiration = exp
		}
		if _, err := s.database.Collection(config.AppConfig.DriverCollection).InsertOne(sessCtx, driver); err != nil {
			return nil, fmt.Errorf("failed to insert driver profile: %w", err)
		}
		if req.Vehicle != nil {
			vehicle := models.Vehicle{
				ID:                primitive.NewObjectID(),
				DriverID:          driver.ID,
				Brand:             req.Vehicle.Brand,
				Model:             req.Vehicle.Model,
				YearOfManufacture: req.Vehicle.YearOfManufacture,
				YearOfModel:       req.Vehicle.YearOfModel,
				Renavam:           req.Vehicle.Renavam,
				LicensePlate:      req.Vehicle.LicensePlate,
				Color:             req.Vehicle.Color,
				IsActive:          true,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if _, err := s.database.Collection(config.AppConfig.VehicleCollection).InsertOne(sessCtx, vehicle); err != nil {
				return nil, fmt.Errorf("failed to insert vehicle: %w", err)
			}
		}
		return &models.Profile{Role: models.UserRoleDriver, Driver: &driver}, nil
	}

	return nil, nil
}

// GetUser returns a user joined with its role profile
func (s *UserService) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.UserWithProfile, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.UserCollection, "_id")
	defer span.End()

	var user models.User
	err := s.database.Collection(config.AppConfig.UserCollection).
		FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserWithProfile{User: user, Profile: profile}, nil
}

// GetUserByEmail returns a user by email, without its profile
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.UserCollection, "email")
	defer span.End()

	var user models.User
	err := s.database.Collection(config.AppConfig.UserCollection).
		FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &user, nil
}

// ListUsers returns all users without profiles
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.UserCollection, "all")
	defer span.End()

	cursor, err := s.database.Collection(config.AppConfig.UserCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// UpdateUser applies a partial update. Switching the role to PASSENGER
// creates the profile and schedules verification; identity-field edits
// on users that already own a passenger profile re-schedule it.
func (s *UserService) UpdateUser(ctx context.Context, userID primitive.ObjectID, req models.UpdateUserRequest) (*models.UserWithProfile, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "update_user")
	defer span.End()

	current, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	update, identityChanged, err := s.buildUserUpdate(ctx, current, req)
	if err != nil {
		return nil, err
	}

	if len(update) > 0 {
		update["updated_at"] = time.Now().UTC()
		_, err = s.database.Collection(config.AppConfig.UserCollection).
			UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
		if err != nil {
			observability.DatabaseOperations.WithLabelValues("update_user", "error").Inc()
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		observability.DatabaseOperations.WithLabelValues("update_user", "success").Inc()
	}

	profile := current.Profile
	becamePassenger := req.Role == models.UserRolePassenger &&
		(profile == nil || profile.Role != models.UserRolePassenger || profile.Passenger == nil)

	if becamePassenger {
		now := time.Now().UTC()
		passenger := models.Passenger{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Status:    models.PassengerStatusPendingVerification,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.database.Collection(config.AppConfig.PassengerCollection).InsertOne(ctx, passenger); err != nil {
			return nil, fmt.Errorf("failed to insert passenger profile: %w", err)
		}
		profile = &models.Profile{Role: models.UserRolePassenger, Passenger: &passenger}
		s.scheduleVerification(passenger.ID, "role_switch")
	} else if identityChanged && profile != nil && profile.Passenger != nil {
		s.scheduleVerification(profile.Passenger.ID, "identity_update")
	}

	return s.GetUser(ctx, userID)
}

// buildUserUpdate validates the changed fields and reports whether any
// identity field relevant to verification changed
func (s *UserService) buildUserUpdate(ctx context.Context, current *models.UserWithProfile, req models.UpdateUserRequest) (bson.M, bool, error) {
	update := bson.M{}
	identityChanged := false

	if req.Email != "" && req.Email != current.Email {
		count, err := s.database.Collection(config.AppConfig.UserCollection).
			CountDocuments(ctx, bson.M{"email": req.Email, "_id": bson.M{"$ne": current.ID}})
		if err != nil {
			return nil, false, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if count > 0 {
			return nil, false, models.ErrEmailAlreadyExists
		}
		update["email"] = req.Email
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, fmt.Errorf("failed to hash password: %w", err)
		}
		update["password"] = string(hash)
	}

	if req.FullName != "" && req.FullName != current.FullName {
		update["full_name"] = req.FullName
		identityChanged = true
	}

	if req.Phone != "" {
		phone, err := utils.NormalizePhoneNumber(req.Phone)
		if err != nil {
			return nil, false, fmt.Errorf("invalid phone number: %w", err)
		}
		update["phone"] = phone
	}

	if req.CPF != "" {
		cpf := utils.NormalizeCPF(req.CPF)
		if !utils.ValidateCPF(cpf) {
			return nil, false, models.ErrInvalidCPF
		}
		if cpf != current.CPF {
			update["cpf"] = cpf
			identityChanged = true
		}
	}

	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, false, fmt.Errorf("invalid birth date: %w", err)
		}
		if current.BirthDate == nil || !current.BirthDate.Equal(birthDate) {
			update["birth_date"] = birthDate
			identityChanged = true
		}
	}

	if req.Address != nil {
		update["address"] = req.Address
	}

	if req.CNH != "" && current.Profile != nil && current.Profile.Driver != nil {
		_, err := s.database.Collection(config.AppConfig.DriverCollection).UpdateOne(ctx,
			bson.M{"_id": current.Profile.Driver.ID},
			bson.M{"$set": bson.M{"cnh": req.CNH, "updated_at": time.Now().UTC()}})
		if err != nil {
			return nil, false, fmt.Errorf("failed to update driver CNH: %w", err)
		}
	}

	return update, identityChanged, nil
}

// DeleteUser removes a user and its role profiles in one transaction
func (s *UserService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, span := utils.TraceDatabaseTransaction(ctx, "delete_user")
	defer span.End()

	res, err := s.database.Collection(config.AppConfig.UserCollection).
		CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if res == 0 {
		return models.ErrUserNotFound
	}

	err = utils.ExecuteWithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.database.Collection(config.AppConfig.UserCollection).DeleteOne(sessCtx, bson.M{"_id": userID}); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if _, err := s.database.Collection(config.AppConfig.PassengerCollection).DeleteMany(sessCtx, bson.M{"user_id": userID}); err != nil {
			return fmt.Errorf("failed to delete passenger profile: %w", err)
		}
		if _, err := s.database.Collection(config.AppConfig.DriverCollection).DeleteMany(sessCtx, bson.M{"user_id": userID}); err != nil {
			return fmt.Errorf("failed to delete driver profile: %w", err)
		}
		if _, err := s.database.Collection(config.AppConfig.FavoriteAddressCollection).DeleteMany(sessCtx, bson.M{"user_id": userID}); err != nil {
			return fmt.Errorf("failed to delete favorite addresses: %w", err)
		}
		return nil
	})
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("delete_user", "error").Inc()
		return err
	}
	observability.DatabaseOperations.WithLabelValues("delete_user", "success").Inc()

	s.logger.Info("user deleted", zap.String("user_id", userID.Hex()))
	return nil
}

// loadProfile finds the role profile owned by the user, if any
func (s *UserService) loadProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var passenger models.Passenger
	err := s.database.Collection(config.AppConfig.PassengerCollection).
		FindOne(ctx, bson.M{"user_id": userID}).Decode(&passenger)
	if err == nil {
		return &models.Profile{Role: models.UserRolePassenger, Passenger: &passenger}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to load passenger profile: %w", err)
	}

	var driver models.Driver
	err = s.database.Collection(config.AppConfig.DriverCollection).
		FindOne(ctx, bson.M{"user_id": userID}).Decode(&driver)
	if err == nil {
		return &models.Profile{Role: models.UserRoleDriver, Driver: &driver}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to load driver profile: %w", err)
	}

	return nil, nil
}

// scheduleVerification enqueues a background CPF verification job
func (s *UserService) scheduleVerification(passengerID primitive.ObjectID, trigger string) {
	if s.queue == nil {
		return
	}
	err := s.queue.Enqueue(VerificationJob{
		PassengerID: passengerID.Hex(),
		Trigger:     trigger,
	})
	if err != nil {
		s.logger.Warn("failed to enqueue verification job",
			zap.String("passenger_id", passengerID.Hex()),
			zap.String("trigger", trigger),
			zap.Error(err))
	}
}
