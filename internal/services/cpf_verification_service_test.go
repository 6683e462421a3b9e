package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeIdentityClient answers with a canned result or error
type fakeIdentityClient struct {
	result *models.CPFConsultResult
	err    error
	calls  int
}

func (f *fakeIdentityClient) ConsultCPF(ctx context.Context, cpf, fullName string, birthDate *time.Time) (*models.CPFConsultResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func insertTestPassenger(t *testing.T, fullName, cpf string, birthDate *time.Time) primitive.ObjectID {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     primitive.NewObjectID().Hex() + "@example.com",
		FullName:  fullName,
		Password:  "hash",
		CPF:       cpf,
		BirthDate: birthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := config.MongoDB.Collection(config.AppConfig.UserCollection).InsertOne(ctx, user)
	require.NoError(t, err)

	passenger := models.Passenger{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Status:    models.PassengerStatusPendingVerification,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = config.MongoDB.Collection(config.AppConfig.PassengerCollection).InsertOne(ctx, passenger)
	require.NoError(t, err)

	return passenger.ID
}

func loadTestPassenger(t *testing.T, passengerID primitive.ObjectID) models.Passenger {
	t.Helper()
	var passenger models.Passenger
	err := config.MongoDB.Collection(config.AppConfig.PassengerCollection).
		FindOne(context.Background(), bson.M{"_id": passengerID}).Decode(&passenger)
	require.NoError(t, err)
	return passenger
}

func countVerificationRecords(t *testing.T, passengerID primitive.ObjectID) int64 {
	t.Helper()
	count, err := config.MongoDB.Collection(config.AppConfig.CPFVerificationCollection).
		CountDocuments(context.Background(), bson.M{"passenger_id": passengerID})
	require.NoError(t, err)
	return count
}

func TestVerifyPassengerCPF_Approved(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	passengerID := insertTestPassenger(t, "Maria da Silva", "52998224725", &birthDate)

	client := &fakeIdentityClient{result: &models.CPFConsultResult{
		CPF:               "52998224725",
		Nome:              "MARIA DA SILVA",
		DataNascimento:    "1990-05-20",
		SituacaoCadastral: models.RegistryStatusRegular,
	}}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	err := svc.VerifyPassengerCPF(context.Background(), passengerID)
	require.NoError(t, err)

	passenger := loadTestPassenger(t, passengerID)
	assert.Equal(t, models.PassengerStatusVerified, passenger.Status)
	assert.True(t, passenger.CPFVerified)
	require.NotNil(t, passenger.CPFVerifiedAt)
	assert.True(t, passenger.TrustStateConsistent())

	records, err := svc.VerificationHistory(context.Background(), passengerID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.CPFVerificationStatusApproved, records[0].Status)
	assert.Equal(t, models.CPFVerificationProvider, records[0].Provider)
}

func TestVerifyPassengerCPF_BirthDateComparedByCalendarDay(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	// Stored with a time-of-day component; only the calendar date counts
	loc := time.FixedZone("BRT", -3*3600)
	birthDate := time.Date(1985, 12, 1, 10, 30, 0, 0, loc)
	passengerID := insertTestPassenger(t, "João Pereira", "52998224725", &birthDate)

	client := &fakeIdentityClient{result: &models.CPFConsultResult{
		CPF:               "52998224725",
		Nome:              "joão pereira",
		DataNascimento:    "1985-12-01",
		SituacaoCadastral: models.RegistryStatusRegular,
	}}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))

	passenger := loadTestPassenger(t, passengerID)
	assert.Equal(t, models.PassengerStatusVerified, passenger.Status)
}

func TestVerifyPassengerCPF_NameMismatchRejects(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	passengerID := insertTestPassenger(t, "Maria da Silva", "52998224725", &birthDate)

	client := &fakeIdentityClient{result: &models.CPFConsultResult{
		CPF:               "52998224725",
		Nome:              "OUTRA PESSOA",
		DataNascimento:    "1990-05-20",
		SituacaoCadastral: models.RegistryStatusRegular,
	}}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))

	passenger := loadTestPassenger(t, passengerID)
	assert.Equal(t, models.PassengerStatusRejected, passenger.Status)
	assert.False(t, passenger.CPFVerified)
	assert.Nil(t, passenger.CPFVerifiedAt)
	assert.True(t, passenger.TrustStateConsistent())

	records, err := svc.VerificationHistory(context.Background(), passengerID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.CPFVerificationStatusRejected, records[0].Status)
}

func TestVerifyPassengerCPF_IrregularRegistryRejects(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	passengerID := insertTestPassenger(t, "Maria da Silva", "52998224725", &birthDate)

	client := &fakeIdentityClient{result: &models.CPFConsultResult{
		CPF:               "52998224725",
		Nome:              "Maria da Silva",
		DataNascimento:    "1990-05-20",
		SituacaoCadastral: "SUSPENSA",
	}}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))

	passenger := loadTestPassenger(t, passengerID)
	assert.Equal(t, models.PassengerStatusRejected, passenger.Status)
}

func TestVerifyPassengerCPF_ProviderErrorLeavesTrustStateUntouched(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()

	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	passengerID := insertTestPassenger(t, "Maria da Silva", "52998224725", &birthDate)

	client := &fakeIdentityClient{err: errors.New("gateway timeout")}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	// The provider error is absorbed; only persistence failures surface
	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))

	passenger := loadTestPassenger(t, passengerID)
	assert.Equal(t, models.PassengerStatusPendingVerification, passenger.Status)
	assert.False(t, passenger.CPFVerified)
	assert.Nil(t, passenger.CPFVerifiedAt)

	records, err := svc.VerificationHistory(context.Background(), passengerID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.CPFVerificationStatusError, records[0].Status)
}

func TestVerifyPassengerCPF_MissingPassengerIsSilent(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()

	client := &fakeIdentityClient{}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	missing := primitive.NewObjectID()
	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), missing))

	assert.Zero(t, client.calls, "provider must not be consulted for a missing passenger")
	assert.Zero(t, countVerificationRecords(t, missing))
}

func TestVerifyPassengerCPF_IncompleteIdentityIsSilent(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()

	// No birth date on file
	passengerID := insertTestPassenger(t, "Maria da Silva", "52998224725", nil)

	client := &fakeIdentityClient{}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))

	assert.Zero(t, client.calls)
	assert.Zero(t, countVerificationRecords(t, passengerID))

	passenger := loadTestPassenger(t, passengerID)
	assert.Equal(t, models.PassengerStatusPendingVerification, passenger.Status)
}

func TestVerifyPassengerCPF_RepeatedRunsAppendRecords(t *testing.T) {
	cleanup := setupServiceTest(t)
	defer cleanup()
	requireTransactions(t)

	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	passengerID := insertTestPassenger(t, "Maria da Silva", "52998224725", &birthDate)

	client := &fakeIdentityClient{result: &models.CPFConsultResult{
		CPF:               "52998224725",
		Nome:              "Maria da Silva",
		DataNascimento:    "1990-05-20",
		SituacaoCadastral: models.RegistryStatusRegular,
	}}
	svc := NewCPFVerificationService(config.MongoDB, client, zap.NewNop())

	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))
	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))

	// Registry situation changes; the final state follows the last run
	client.result.SituacaoCadastral = "CANCELADA"
	require.NoError(t, svc.VerifyPassengerCPF(context.Background(), passengerID))

	assert.EqualValues(t, 3, countVerificationRecords(t, passengerID))

	passenger := loadTestPassenger(t, passengerID)
	assert.Equal(t, models.PassengerStatusRejected, passenger.Status)
	assert.False(t, passenger.CPFVerified)
	assert.Nil(t, passenger.CPFVerifiedAt)

	records, err := svc.VerificationHistory(context.Background(), passengerID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, models.CPFVerificationStatusRejected, records[0].Status, "history is newest first")
}

func TestSameCalendarDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)

	tests := []struct {
		name     string
		provider string
		stored   time.Time
		want     bool
	}{
		{"exact match", "1990-05-20", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), true},
		{"time of day ignored", "1990-05-20", time.Date(1990, 5, 20, 23, 59, 59, 0, loc), true},
		{"different day", "1990-05-21", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), false},
		{"whitespace tolerated", " 1990-05-20 ", time.Date(1990, 5, 20, 12, 0, 0, 0, time.UTC), true},
		{"unparseable provider date", "20/05/1990", time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameCalendarDate(tt.provider, tt.stored))
		})
	}
}
