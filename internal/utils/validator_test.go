// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleProbe struct {
	Role string `validate:"required,role"`
}

type statusProbe struct {
	Status string `validate:"required,order_status"`
}

func TestRoleValidation(t *testing.T) {
	for _, role := range []string{"Customer", "Pharmacy", "Admin"} {
		assert.NoError(t, ValidateStruct(&roleProbe{Role: role}))
	}

	// The enums are closed, including case variants
	for _, role := range []string{"customer", "Wizard", "ADMIN"} {
		assert.Error(t, ValidateStruct(&roleProbe{Role: role}), "role %q", role)
	}
}

func TestOrderStatusValidation(t *testing.T) {
	for _, status := range []string{"Placed", "Accepted", "Ready", "Delivered", "Rejected"} {
		assert.NoError(t, ValidateStruct(&statusProbe{Status: status}))
	}

	assert.Error(t, ValidateStruct(&statusProbe{Status: "Shipped"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&roleProbe{Role: "Wizard"})
	require.Error(t, err)

	validationErrors := GetValidationErrors(err)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "role", validationErrors[0].Field)
	assert.Equal(t, "Role must be one of Customer, Pharmacy, Admin", validationErrors[0].Message)

	assert.Empty(t, GetValidationErrors(nil))
}
