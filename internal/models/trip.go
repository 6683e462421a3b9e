package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripStatus is the lifecycle state of a trip
type TripStatus string

const (
	TripStatusRequested TripStatus = "REQUESTED"
	TripStatusAccepted  TripStatus = "ACCEPTED"
	TripStatusStarted   TripStatus = "STARTED"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCanceled  TripStatus = "CANCELED"
)

// Trip represents a ride between a passenger and a driver
type Trip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID    primitive.ObjectID `bson:"driver_id" json:"driverId"`
	PassengerID primitive.ObjectID `bson:"passenger_id" json:"passengerId"`
	Origin      string             `bson:"origin" json:"origin"`
	Destination string             `bson:"destination" json:"destination"`
	Status      TripStatus         `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CreateTripRequest is the request body for requesting a trip
type CreateTripRequest struct {
	DriverID    string `json:"driverId" binding:"required"`
	PassengerID string `json:"passengerId" binding:"required"`
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}
