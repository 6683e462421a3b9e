package tests

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/redisclient"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContainers holds references to test containers
type TestContainers struct {
	MongoContainer *mongodb.MongoDBContainer
	RedisContainer *redis.RedisContainer
	MongoDB        *mongo.Database
	Cleanup        func()
}

// SetupTestContainers starts MongoDB and Redis containers and wires the
// global config at them. MongoDB runs with a single-node replica set so
// multi-document transactions work.
func SetupTestContainers(t *testing.T) *TestContainers {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx,
		"mongo:7.0",
		mongodb.WithReplicaSet("rs0"),
	)
	require.NoError(t, err, "Failed to start MongoDB container")

	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
	)
	require.NoError(t, err, "Failed to start Redis container")

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	redisEndpoint, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err, "Failed to get Redis endpoint")

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	require.NoError(t, err, "Failed to connect to MongoDB")

	err = mongoClient.Ping(ctx, nil)
	require.NoError(t, err, "Failed to ping MongoDB")

	database := mongoClient.Database("ride_test")

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}
	config.AppConfig.MongoURI = mongoURI
	config.AppConfig.MongoDatabase = "ride_test"
	config.AppConfig.RedisURI = redisEndpoint
	config.AppConfig.RedisTTL = time.Minute
	config.AppConfig.UserCollection = "users"
	config.AppConfig.PassengerCollection = "passengers"
	config.AppConfig.DriverCollection = "drivers"
	config.AppConfig.VehicleCollection = "vehicles"
	config.AppConfig.TripCollection = "trips"
	config.AppConfig.FavoriteAddressCollection = "favorite_addresses"
	config.AppConfig.CPFVerificationCollection = "cpf_verifications"

	config.MongoDB = database
	config.Redis = redisclient.NewClient(goredis.NewClient(&goredis.Options{
		Addr: redisEndpoint,
	}))

	cleanup := func() {
		_ = mongoClient.Disconnect(ctx)
		_ = mongoContainer.Terminate(ctx)
		_ = redisContainer.Terminate(ctx)
	}

	return &TestContainers{
		MongoContainer: mongoContainer,
		RedisContainer: redisContainer,
		MongoDB:        database,
		Cleanup:        cleanup,
	}
}
