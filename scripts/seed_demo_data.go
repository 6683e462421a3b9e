package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Seeds one approved driver with a vehicle and one passenger pending
// CPF verification, for local development.
func main() {
	fmt.Println("🌱 Seeding demo data...")

	if err := logging.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config.InitMongoDB()
	if config.MongoDB == nil {
		log.Fatal("Failed to initialize MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := config.MongoDB.Collection(config.AppConfig.UserCollection)

	count, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count existing users: %v", err)
	}
	if count > 0 {
		fmt.Printf("⚠️  Found %d existing users, skipping seed\n", count)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	now := time.Now().UTC()
	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)

	passengerUser := models.User{
		ID:        primitive.NewObjectID(),
		Email:     "passageira@example.com",
		FullName:  "Maria da Silva",
		Phone:     "+5521999887766",
		Password:  string(hash),
		BirthDate: &birthDate,
		CPF:       "52998224725",
		CreatedAt: now,
		UpdatedAt: now,
	}
	driverUser := models.User{
		ID:        primitive.NewObjectID(),
		Email:     "motorista@example.com",
		FullName:  "João Pereira",
		Phone:     "+5521988776655",
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := users.InsertMany(ctx, []interface{}{passengerUser, driverUser}); err != nil {
		log.Fatalf("Failed to insert demo users: %v", err)
	}

	passenger := models.Passenger{
		ID:        primitive.NewObjectID(),
		UserID:    passengerUser.ID,
		Status:    models.PassengerStatusPendingVerification,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := config.MongoDB.Collection(config.AppConfig.PassengerCollection).InsertOne(ctx, passenger); err != nil {
		log.Fatalf("Failed to insert demo passenger: %v", err)
	}

	driver := models.Driver{
		ID:            primitive.NewObjectID(),
		UserID:        driverUser.ID,
		CNH:           "12345678900",
		CNHExpiration: now.AddDate(5, 0, 0),
		IsApproved:    true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := config.MongoDB.Collection(config.AppConfig.DriverCollection).InsertOne(ctx, driver); err != nil {
		log.Fatalf("Failed to insert demo driver: %v", err)
	}

	vehicle := models.Vehicle{
		ID:                primitive.NewObjectID(),
		DriverID:          driver.ID,
		Brand:             "Fiat",
		Model:             "Argo",
		YearOfManufacture: 2022,
		YearOfModel:       2023,
		Renavam:           "00123456789",
		LicensePlate:      "ABC1D23",
		Color:             "prata",
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := config.MongoDB.Collection(config.AppConfig.VehicleCollection).InsertOne(ctx, vehicle); err != nil {
		log.Fatalf("Failed to insert demo vehicle: %v", err)
	}

	fmt.Println("✅ Seeded demo passenger (pending verification), driver and vehicle")
	fmt.Println("   login: passageira@example.com / motorista@example.com, password: demo-password")
}
