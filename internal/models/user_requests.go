package models

// CreateUserRequest is the request body for registering a user.
// Role decides which profile is created alongside the account; driver
// registrations carry CNH data and optionally a first vehicle.
type CreateUserRequest struct {
	Email     string                `json:"email" binding:"required,email"`
	Password  string                `json:"password" binding:"required,min=6"`
	FullName  string                `json:"fullName" binding:"required"`
	Phone     string                `json:"phone,omitempty"`
	Role      UserRole              `json:"role,omitempty"`
	BirthDate string                `json:"birthDate,omitempty"`
	CPF       string                `json:"cpf,omitempty"`
	Address   *Address              `json:"address,omitempty"`
	CNH       string                `json:"cnh,omitempty"`
	CNHExp    string                `json:"cnhExpiration,omitempty"`
	Vehicle   *CreateVehicleRequest `json:"vehicle,omitempty"`
}

// UpdateUserRequest is the request body for updating a user. Setting
// Role to PASSENGER on a user without a passenger profile creates one
// and schedules CPF verification.
type UpdateUserRequest struct {
	Email     string   `json:"email,omitempty"`
	Password  string   `json:"password,omitempty"`
	FullName  string   `json:"fullName,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Role      UserRole `json:"role,omitempty"`
	BirthDate string   `json:"birthDate,omitempty"`
	CPF       string   `json:"cpf,omitempty"`
	Address   *Address `json:"address,omitempty"`
	CNH       string   `json:"cnh,omitempty"`
	CNHExp    string   `json:"cnhExpiration,omitempty"`
}
