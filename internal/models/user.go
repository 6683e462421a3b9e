package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole identifies the marketplace role a user registered with
type UserRole string

const (
	UserRoleDriver    UserRole = "DRIVER"
	UserRolePassenger UserRole = "PASSENGER"
)

// Address represents a postal address
type Address struct {
	Street       string  `bson:"street" json:"street"`
	Number       string  `bson:"number" json:"number"`
	Complement   *string `bson:"complement,omitempty" json:"complement,omitempty"`
	Neighborhood string  `bson:"neighborhood" json:"neighborhood"`
	City         string  `bson:"city" json:"city"`
	State        string  `bson:"state" json:"state"`
	ZipCode      string  `bson:"zip_code" json:"zipCode"`
}

// User holds the account and identity data shared by both roles.
// Identity fields (FullName, CPF, BirthDate) are owned here; the
// verification workflow only reads them.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	FullName  string             `bson:"full_name" json:"fullName"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password  string             `bson:"password" json:"-"`
	BirthDate *time.Time         `bson:"birth_date,omitempty" json:"birthDate,omitempty"`
	CPF       string             `bson:"cpf,omitempty" json:"cpf,omitempty"`
	Address   *Address           `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Profile is the tagged role variant attached to a user. Exactly the
// pointer matching Role is set; a user with no profile has no Profile.
type Profile struct {
	Role      UserRole   `json:"role"`
	Passenger *Passenger `json:"passenger,omitempty"`
	Driver    *Driver    `json:"driver,omitempty"`
}

// UserWithProfile is a user joined with its role-specific profile
type UserWithProfile struct {
	User    `bson:",inline"`
	Profile *Profile `bson:"-" json:"profile,omitempty"`
}
