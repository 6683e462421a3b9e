package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	testSetupOnce sync.Once
	testMongoOK   bool
)

// setupServiceTest connects to the test MongoDB and wires the global
// config. Tests are skipped when MONGODB_URI is not set.
func setupServiceTest(t *testing.T) func() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		t.Skip("Skipping service tests: MONGODB_URI not set")
	}

	testSetupOnce.Do(func() {
		_ = logging.InitLogger()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			return
		}
		if err := client.Ping(ctx, nil); err != nil {
			return
		}

		config.MongoDB = client.Database("ride_test")
		testMongoOK = true
	})

	if !testMongoOK {
		t.Fatal("failed to connect to test MongoDB")
	}

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}
	config.AppConfig.UserCollection = "test_users"
	config.AppConfig.PassengerCollection = "test_passengers"
	config.AppConfig.DriverCollection = "test_drivers"
	config.AppConfig.VehicleCollection = "test_vehicles"
	config.AppConfig.TripCollection = "test_trips"
	config.AppConfig.FavoriteAddressCollection = "test_favorite_addresses"
	config.AppConfig.CPFVerificationCollection = "test_cpf_verifications"
	config.AppConfig.RedisTTL = time.Minute

	ctx := context.Background()
	return func() {
		for _, name := range []string{
			"test_users", "test_passengers", "test_drivers", "test_vehicles",
			"test_trips", "test_favorite_addresses", "test_cpf_verifications",
		} {
			_ = config.MongoDB.Collection(name).Drop(ctx)
		}
	}
}

// requireTransactions skips the test when the backing MongoDB does not
// support multi-document transactions (standalone deployments)
func requireTransactions(t *testing.T) {
	ctx := context.Background()
	session, err := config.MongoDB.Client().StartSession()
	if err != nil {
		t.Skipf("Skipping: cannot start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, nil
	})
	if err != nil {
		t.Skipf("Skipping: transactions not supported by test deployment: %v", err)
	}
}
