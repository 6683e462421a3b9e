package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/services"
	"go.uber.org/zap"
)

// TestVerificationFlow registers a passenger and waits for the
// background queue to verify the CPF against the development-mode
// registry client, which answers with a matching REGULAR record.
func TestVerificationFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container-based integration test in short mode")
	}
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("Skipping integration tests")
	}

	_ = logging.InitLogger()

	containers := SetupTestContainers(t)
	defer containers.Cleanup()

	config.AppConfig.Environment = "development"
	config.AppConfig.CPFProviderTimeout = 5 * time.Second

	logger := zap.NewNop()
	client := services.NewCBCCPFClient(config.AppConfig, logger)
	verificationSvc := services.NewCPFVerificationService(config.MongoDB, client, logger)
	queue := services.NewVerificationQueue(verificationSvc, 2, 16)
	defer queue.Stop()

	userSvc := services.NewUserService(config.MongoDB, queue, logger)

	ctx := context.Background()
	user, err := userSvc.CreateUser(ctx, models.CreateUserRequest{
		Email:     "maria@example.com",
		Password:  "s3nh4-forte",
		FullName:  "Maria da Silva",
		Role:      models.UserRolePassenger,
		CPF:       "52998224725",
		BirthDate: "1990-05-20",
	})
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	require.NotNil(t, user.Profile.Passenger)

	passengerID := user.Profile.Passenger.ID
	passengerSvc := services.NewPassengerService(config.MongoDB, queue, logger)

	require.Eventually(t, func() bool {
		passenger, err := passengerSvc.GetPassenger(ctx, passengerID)
		if err != nil {
			return false
		}
		return passenger.Status == models.PassengerStatusVerified
	}, 30*time.Second, 250*time.Millisecond, "passenger never became VERIFIED")

	passenger, err := passengerSvc.GetPassenger(ctx, passengerID)
	require.NoError(t, err)
	assert.True(t, passenger.CPFVerified)
	assert.NotNil(t, passenger.CPFVerifiedAt)
	assert.True(t, passenger.TrustStateConsistent())

	records, err := verificationSvc.VerificationHistory(ctx, passengerID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.CPFVerificationStatusApproved, records[0].Status)
}
