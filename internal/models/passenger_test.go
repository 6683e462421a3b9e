package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPassengerTrustStateConsistent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		passenger Passenger
		want      bool
	}{
		{
			"pending with clear flags",
			Passenger{Status: PassengerStatusPendingVerification},
			true,
		},
		{
			"verified with flags set",
			Passenger{Status: PassengerStatusVerified, CPFVerified: true, CPFVerifiedAt: &now},
			true,
		},
		{
			"rejected with clear flags",
			Passenger{Status: PassengerStatusRejected},
			true,
		},
		{
			"verified flag without timestamp",
			Passenger{Status: PassengerStatusVerified, CPFVerified: true},
			false,
		},
		{
			"verified status without flag",
			Passenger{Status: PassengerStatusVerified},
			false,
		},
		{
			"rejected with lingering timestamp",
			Passenger{Status: PassengerStatusRejected, CPFVerifiedAt: &now},
			false,
		},
		{
			"verified flag on rejected status",
			Passenger{Status: PassengerStatusRejected, CPFVerified: true, CPFVerifiedAt: &now},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.passenger.TrustStateConsistent())
		})
	}
}
