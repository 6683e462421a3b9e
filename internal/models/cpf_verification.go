package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CPFVerificationStatus is the outcome of one verification attempt
type CPFVerificationStatus string

const (
	CPFVerificationStatusApproved CPFVerificationStatus = "APPROVED"
	CPFVerificationStatusRejected CPFVerificationStatus = "REJECTED"
	CPFVerificationStatusError    CPFVerificationStatus = "ERROR"
)

// CPFVerificationProvider identifies the government registry consulted
const CPFVerificationProvider = "CBC_GOV_BR"

// CPFVerification is an immutable audit record of one verification
// attempt. Exactly one is appended per workflow execution, whatever
// the outcome; records are never updated or deleted.
type CPFVerification struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	PassengerID primitive.ObjectID    `bson:"passenger_id" json:"passengerId"`
	CPF         string                `bson:"cpf" json:"cpf"`
	FullName    string                `bson:"full_name" json:"fullName"`
	BirthDate   *time.Time            `bson:"birth_date,omitempty" json:"birthDate,omitempty"`
	Provider    string                `bson:"provider" json:"provider"`
	Status      CPFVerificationStatus `bson:"status" json:"status"`
	RawResponse bson.M                `bson:"raw_response" json:"rawResponse"`
	CreatedAt   time.Time             `bson:"created_at" json:"createdAt"`
}

// CPFConsultResult is the structured answer from the registry provider
type CPFConsultResult struct {
	CPF               string `json:"cpf"`
	Nome              string `json:"nome"`
	DataNascimento    string `json:"dataNascimento"`
	SituacaoCadastral string `json:"situacaoCadastral"`
}

// RegistryStatusRegular is the provider sentinel for an active registry standing
const RegistryStatusRegular = "REGULAR"
