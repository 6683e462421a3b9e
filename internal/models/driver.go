package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver represents a person who may accept rides
type Driver struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	CNH           string             `bson:"cnh" json:"cnh"`
	CNHExpiration time.Time          `bson:"cnh_expiration" json:"cnhExpiration"`
	IsApproved    bool               `bson:"is_approved" json:"isApproved"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// UpdateDriverRequest is the request body for updating driver data
type UpdateDriverRequest struct {
	CNH           string     `json:"cnh,omitempty"`
	CNHExpiration *time.Time `json:"cnhExpiration,omitempty"`
}
