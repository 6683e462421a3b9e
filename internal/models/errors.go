package models

import "errors"

// Error constants for marketplace operations
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailAlreadyExists      = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrPassengerNotFound       = errors.New("passenger not found")
	ErrDriverNotFound          = errors.New("driver not found")
	ErrVehicleNotFound         = errors.New("vehicle not found")
	ErrTripNotFound            = errors.New("trip not found")
	ErrFavoriteAddressNotFound = errors.New("favorite address not found")
	ErrInvalidCPF              = errors.New("invalid CPF")
	ErrMissingIdentityFields   = errors.New("passenger has incomplete identity fields")
	ErrInvalidObjectID         = errors.New("invalid object ID")
)
