package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() *UserService {
	return NewUserService(config.MongoDB, nil, zap.NewNop())
}

func TestCreateUser_PassengerProfile(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	svc := newTestUserService()

	user, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email:     "maria@example.com",
		Password:  "s3nh4-forte",
		FullName:  "Maria da Silva",
		Role:      models.UserRolePassenger,
		CPF:       "529.982.247-25",
		BirthDate: "1990-05-20",
	})
	require.NoError(t, err)

	assert.Equal(t, "52998224725", user.CPF, "CPF stored normalized")
	require.NotNil(t, user.BirthDate)
	require.NotNil(t, user.Profile)
	assert.Equal(t, models.UserRolePassenger, user.Profile.Role)
	require.NotNil(t, user.Profile.Passenger)
	assert.Equal(t, models.PassengerStatusPendingVerification, user.Profile.Passenger.Status)
	assert.False(t, user.Profile.Passenger.CPFVerified)

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3nh4-forte"))
	assert.NoError(t, err, "password stored as bcrypt hash")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	svc := newTestUserService()

	req := models.CreateUserRequest{
		Email:    "dup@example.com",
		Password: "s3nh4-forte",
		FullName: "Maria da Silva",
	}

	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)
}

func TestCreateUser_InvalidCPF(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()

	svc := newTestUserService()

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email:    "maria@example.com",
		Password: "s3nh4-forte",
		FullName: "Maria da Silva",
		CPF:      "11111111111",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCPF)
}

func TestCreateUser_DriverWithVehicle(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	svc := newTestUserService()

	user, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email:    "joao@example.com",
		Password: "s3nh4-forte",
		FullName: "João Pereira",
		Role:     models.UserRoleDriver,
		CNH:      "12345678900",
		CNHExp:   "2030-01-01",
		Vehicle: &models.CreateVehicleRequest{
			DriverID:          "ignored",
			Brand:             "Fiat",
			Model:             "Argo",
			YearOfManufacture: 2022,
			YearOfModel:       2023,
			Renavam:           "00123456789",
			LicensePlate:      "ABC1D23",
			Color:             "prata",
		},
	})
	require.NoError(t, err)

	require.NotNil(t, user.Profile)
	require.NotNil(t, user.Profile.Driver)
	assert.Equal(t, "12345678900", user.Profile.Driver.CNH)

	vehicleSvc := NewVehicleService(config.MongoDB, zap.NewNop())
	vehicles, err := vehicleSvc.ListVehiclesByDriver(context.Background(), user.Profile.Driver.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.True(t, vehicles[0].IsActive, "first vehicle starts active")
}

func TestUpdateUser_RoleSwitchCreatesPassengerProfile(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	svc := newTestUserService()

	created, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email:    "ana@example.com",
		Password: "s3nh4-forte",
		FullName: "Ana Souza",
	})
	require.NoError(t, err)
	require.Nil(t, created.Profile)

	updated, err := svc.UpdateUser(context.Background(), created.ID, models.UpdateUserRequest{
		Role: models.UserRolePassenger,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Profile)
	assert.Equal(t, models.UserRolePassenger, updated.Profile.Role)
	require.NotNil(t, updated.Profile.Passenger)
	assert.Equal(t, models.PassengerStatusPendingVerification, updated.Profile.Passenger.Status)
}

func TestDeleteUser_RemovesProfiles(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	svc := newTestUserService()

	created, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email:    "bruno@example.com",
		Password: "s3nh4-forte",
		FullName: "Bruno Lima",
		Role:     models.UserRolePassenger,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))

	_, err = svc.GetUser(context.Background(), created.ID)
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	passengerSvc := NewPassengerService(config.MongoDB, nil, zap.NewNop())
	_, err = passengerSvc.GetPassenger(context.Background(), created.Profile.Passenger.ID)
	assert.ErrorIs(t, err, models.ErrPassengerNotFound)
}
