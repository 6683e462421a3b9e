package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PassengerStatus is the trust state gating ride-request eligibility
type PassengerStatus string

const (
	PassengerStatusPendingVerification PassengerStatus = "PENDING_VERIFICATION"
	PassengerStatusVerified            PassengerStatus = "VERIFIED"
	PassengerStatusRejected            PassengerStatus = "REJECTED"
)

// Passenger represents a person who may request rides. Trust-state
// fields are mutated only by the CPF verification workflow.
type Passenger struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	Status        PassengerStatus    `bson:"status" json:"status"`
	CPFVerified   bool               `bson:"cpf_verified" json:"cpfVerified"`
	CPFVerifiedAt *time.Time         `bson:"cpf_verified_at,omitempty" json:"cpfVerifiedAt,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// TrustStateConsistent reports whether the derived flags agree with the
// trust state: cpf_verified implies VERIFIED with a timestamp, and
// REJECTED implies the flags are cleared.
func (p *Passenger) TrustStateConsistent() bool {
	if p.CPFVerified {
		return p.Status == PassengerStatusVerified && p.CPFVerifiedAt != nil
	}
	if p.Status == PassengerStatusVerified {
		return false
	}
	return p.CPFVerifiedAt == nil
}
