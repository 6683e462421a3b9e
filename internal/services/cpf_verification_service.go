package services

import (
	"context"
	"fmt"
	"strings"
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

// Global CPF verification service instance
var CPFVerificationServiceInstance *CPFVerificationService

// CPFVerificationService decides whether a passenger's declared
// identity matches the government registry and persists the decision.
// Every run appends exactly one audit record; the audit insert and the
// trust-state update commit as one transaction.
type CPFVerificationService struct {
	database *mongo.Database
	client   IdentityClient
	logger   *zap.Logger
}

// NewCPFVerificationService creates a new CPF verification service instance
func NewCPFVerificationService(database *mongo.Database, client IdentityClient, logger *zap.Logger) *CPFVerificationService {
	return &CPFVerificationService{
		database: database,
		client:   client,
		logger:   logger,
	}
}

// InitCPFVerificationService initializes the global CPF verification service instance
func InitCPFVerificationService() {
	logger := zap.L().Named("cpf_verification_service")

	logger.Info("initializing CPF verification service",
		zap.String("provider_base_url", config.AppConfig.CPFProviderBaseURL),
		zap.Duration("provider_timeout", config.AppConfig.CPFProviderTimeout))

	client := NewCBCCPFClient(config.AppConfig, logger)
	CPFVerificationServiceInstance = NewCPFVerificationService(config.MongoDB, client, logger)

	logger.Info("CPF verification service initialized successfully")
}

// VerifyPassengerCPF runs one verification attempt for the passenger.
// A missing passenger or incomplete identity fields abort silently; a
// provider failure is recorded as an ERROR audit entry without touching
// the trust state. Only persistence failures surface to the caller.
func (s *CPFVerificationService) VerifyPassengerCPF(ctx context.Context, passengerID primitive.ObjectID) error {
	startTime := time.Now()
	ctx, span := utils.TraceBusinessLogic(ctx, "cpf_verification")
	defer span.End()

	logger := s.logger.With(zap.String("passenger_id", passengerID.Hex()))

	defer func() {
		logger.Info("CPF verification attempt completed",
			zap.Duration("total_duration", time.Since(startTime)),
			zap.String("operation", "cpf_verification_complete"))
	}()

	passenger, user, err := s.loadPassengerIdentity(ctx, passengerID)
	if err != nil {
		return err
	}
	if passenger == nil {
		// Callers fire and forget after a write; an absent passenger or
		// incomplete identity is logged, never raised.
		return nil
	}

	cpf := utils.NormalizeCPF(user.CPF)
	logger = logger.With(zap.String("cpf", observability.MaskCPF(cpf)))

	result, err := s.client.ConsultCPF(ctx, cpf, user.FullName, user.BirthDate)
	if err != nil {
		logger.Warn("CPF registry consultation failed", zap.Error(err))
		return s.recordProviderError(ctx, passenger, user, cpf, err)
	}

	nameMatches := strings.EqualFold(strings.TrimSpace(result.Nome), strings.TrimSpace(user.FullName))
	birthDateMatches := sameCalendarDate(result.DataNascimento, *user.BirthDate)
	registryRegular := result.SituacaoCadastral == models.RegistryStatusRegular
	approved := nameMatches && birthDateMatches && registryRegular

	logger.Info("CPF verification decision",
		zap.Bool("name_matches", nameMatches),
		zap.Bool("birth_date_matches", birthDateMatches),
		zap.Bool("registry_regular", registryRegular),
		zap.Bool("approved", approved))

	if err := s.persistDecision(ctx, passenger, user, cpf, result, approved); err != nil {
		return err
	}

	s.invalidatePassengerCache(ctx, passengerID)

	return nil
}

// loadPassengerIdentity fetches the passenger and the owning user's
// identity fields. Returns (nil, nil, nil) for the silent-abort cases.
func (s *CPFVerificationService) loadPassengerIdentity(ctx context.Context, passengerID primitive.ObjectID) (*models.Passenger, *models.User, error) {
	logger := s.logger.With(zap.String("passenger_id", passengerID.Hex()))

	var passenger models.Passenger
	err := s.database.Collection(config.AppConfig.PassengerCollection).
		FindOne(ctx, bson.M{"_id": passengerID}).Decode(&passenger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			logger.Info("passenger not found, skipping verification")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load passenger: %w", err)
	}

	var user models.User
	err = s.database.Collection(config.AppConfig.UserCollection).
		FindOne(ctx, bson.M{"_id": passenger.UserID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			logger.Info("owning user not found, skipping verification")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.CPF == "" || user.FullName == "" || user.BirthDate == nil {
		logger.Warn("passenger has incomplete identity fields, skipping verification",
			zap.Bool("has_cpf", user.CPF != ""),
			zap.Bool("has_full_name", user.FullName != ""),
			zap.Bool("has_birth_date", user.BirthDate != nil))
		return nil, nil, nil
	}

	return &passenger, &user, nil
}

// recordProviderError appends an ERROR audit record and leaves the
// passenger's trust state untouched so a later retry stays possible.
func (s *CPFVerificationService) recordProviderError(ctx context.Context, passenger *models.Passenger, user *models.User, cpf string, cause error) error {
	record := models.CPFVerification{
		ID:          primitive.NewObjectID(),
		PassengerID: passenger.ID,
		CPF:         cpf,
		FullName:    user.FullName,
		BirthDate:   user.BirthDate,
		Provider:    models.CPFVerificationProvider,
		Status:      models.CPFVerificationStatusError,
		RawResponse: bson.M{"error": cause.Error()},
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.database.Collection(config.AppConfig.CPFVerificationCollection).InsertOne(ctx, record)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert_verification", "error").Inc()
		return fmt.Errorf("failed to record verification error: %w", err)
	}

	observability.CPFVerifications.WithLabelValues(string(models.CPFVerificationStatusError)).Inc()
	return nil
}

// persistDecision writes the audit record and the trust-state update in
// one transaction so no reader sees one without the other.
func (s *CPFVerificationService) persistDecision(ctx context.Context, passenger *models.Passenger, user *models.User, cpf string, result *models.CPFConsultResult, approved bool) error {
	ctx, span := utils.TraceDatabaseTransaction(ctx, "cpf_verification_decision")
	defer span.End()

	now := time.Now().UTC()

	status := models.CPFVerificationStatusRejected
	if approved {
		status = models.CPFVerificationStatusApproved
	}

	record := models.CPFVerification{
		ID:          primitive.NewObjectID(),
		PassengerID: passenger.ID,
		CPF:         cpf,
		FullName:    user.FullName,
		BirthDate:   user.BirthDate,
		Provider:    models.CPFVerificationProvider,
		Status:      status,
		RawResponse: bson.M{
			"cpf":               result.CPF,
			"nome":              result.Nome,
			"dataNascimento":    result.DataNascimento,
			"situacaoCadastral": result.SituacaoCadastral,
		},
		CreatedAt: now,
	}

	var passengerUpdate bson.M
	if approved {
		passengerUpdate = bson.M{
			"$set": bson.M{
				"status":          models.PassengerStatusVerified,
				"cpf_verified":    true,
				"cpf_verified_at": now,
				"updated_at":      now,
			},
		}
	} else {
		passengerUpdate = bson.M{
			"$set": bson.M{
				"status":       models.PassengerStatusRejected,
				"cpf_verified": false,
				"updated_at":   now,
			},
			"$unset": bson.M{
				"cpf_verified_at": "",
			},
		}
	}

	err := utils.ExecuteWithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.database.Collection(config.AppConfig.CPFVerificationCollection).InsertOne(sessCtx, record); err != nil {
			return fmt.Errorf("failed to insert verification record: %w", err)
		}
		if _, err := s.database.Collection(config.AppConfig.PassengerCollection).UpdateOne(
			sessCtx,
			bson.M{"_id": passenger.ID},
			passengerUpdate,
		); err != nil {
			return fmt.Errorf("failed to update passenger trust state: %w", err)
		}
		return nil
	})
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("verification_transaction", "error").Inc()
		return err
	}

	observability.DatabaseOperations.WithLabelValues("verification_transaction", "success").Inc()
	observability.CPFVerifications.WithLabelValues(string(status)).Inc()

	return nil
}

func (s *CPFVerificationService) invalidatePassengerCache(ctx context.Context, passengerID primitive.ObjectID) {
	if config.Redis == nil {
		return
	}
	cacheKey := fmt.Sprintf("passenger:%s", passengerID.Hex())
	if err := config.Redis.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate passenger cache", zap.Error(err))
	}
}

// sameCalendarDate compares a provider YYYY-MM-DD date with a stored
// timestamp by calendar date only, each value in its own offset.
func sameCalendarDate(providerDate string, stored time.Time) bool {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(providerDate))
	if err != nil {
		return false
	}
	py, pm, pd := parsed.Date()
	sy, sm, sd := stored.Date()
	return py == sy && pm == sm && pd == sd
}

// VerificationHistory returns the audit trail for a passenger, newest first
func (s *CPFVerificationService) VerificationHistory(ctx context.Context, passengerID primitive.ObjectID) ([]models.CPFVerification, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.CPFVerificationCollection, "passenger_id")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.database.Collection(config.AppConfig.CPFVerificationCollection).
		Find(ctx, bson.M{"passenger_id": passengerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load verification history: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.CPFVerification
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode verification history: %w", err)
	}

	return records, nil
}
