package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle represents a driver's registered vehicle
type Vehicle struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID          primitive.ObjectID `bson:"driver_id" json:"driverId"`
	Brand             string             `bson:"brand" json:"brand"`
	Model             string             `bson:"model" json:"model"`
	YearOfManufacture int                `bson:"year_of_manufacture" json:"yearOfManufacture"`
	YearOfModel       int                `bson:"year_of_model" json:"yearOfModel"`
	Renavam           string             `bson:"renavam" json:"renavam"`
	LicensePlate      string             `bson:"license_plate" json:"licensePlate"`
	Color             string             `bson:"color" json:"color"`
	IsActive          bool               `bson:"is_active" json:"isActive"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CreateVehicleRequest is the request body for registering a vehicle
type CreateVehicleRequest struct {
	DriverID          string `json:"driverId" binding:"required"`
	Brand             string `json:"brand" binding:"required"`
	Model             string `json:"model" binding:"required"`
	YearOfManufacture int    `json:"yearOfManufacture" binding:"required"`
	YearOfModel       int    `json:"yearOfModel" binding:"required"`
	Renavam           string `json:"renavam" binding:"required"`
	LicensePlate      string `json:"licensePlate" binding:"required"`
	Color             string `json:"color" binding:"required"`
}

// UpdateVehicleRequest is the request body for updating a vehicle
type UpdateVehicleRequest struct {
	Brand             string `json:"brand,omitempty"`
	Model             string `json:"model,omitempty"`
	YearOfManufacture int    `json:"yearOfManufacture,omitempty"`
	YearOfModel       int    `json:"yearOfModel,omitempty"`
	Renavam           string `json:"renavam,omitempty"`
	LicensePlate      string `json:"licensePlate,omitempty"`
	Color             string `json:"color,omitempty"`
}

// SelectActiveVehicleRequest is the request body for choosing the active vehicle
type SelectActiveVehicleRequest struct {
	VehicleID string `json:"vehicleId" binding:"required"`
}
