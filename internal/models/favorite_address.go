package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteAddress is a saved address shortcut owned by a user
type FavoriteAddress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	Label        string             `bson:"label" json:"label"`
	Street       string             `bson:"street" json:"street"`
	Number       string             `bson:"number" json:"number"`
	Complement   *string            `bson:"complement,omitempty" json:"complement,omitempty"`
	Neighborhood string             `bson:"neighborhood" json:"neighborhood"`
	City         string             `bson:"city" json:"city"`
	State        string             `bson:"state" json:"state"`
	ZipCode      string             `bson:"zip_code" json:"zipCode"`
	Latitude     *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CreateFavoriteAddressRequest is the request body for saving a favorite address
type CreateFavoriteAddressRequest struct {
	UserID       string   `json:"userId" binding:"required"`
	Label        string   `json:"label" binding:"required"`
	Street       string   `json:"street" binding:"required"`
	Number       string   `json:"number" binding:"required"`
	Complement   *string  `json:"complement,omitempty"`
	Neighborhood string   `json:"neighborhood" binding:"required"`
	City         string   `json:"city" binding:"required"`
	State        string   `json:"state" binding:"required"`
	ZipCode      string   `json:"zipCode" binding:"required"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// UpdateFavoriteAddressRequest is the request body for updating a favorite address
type UpdateFavoriteAddressRequest struct {
	Label        string   `json:"label,omitempty"`
	Street       string   `json:"street,omitempty"`
	Number       string   `json:"number,omitempty"`
	Complement   *string  `json:"complement,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	ZipCode      string   `json:"zipCode,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}
