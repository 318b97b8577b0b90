package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleItem struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type sampleRequest struct {
	Email string       `json:"email" validate:"required,email"`
	Items []sampleItem `json:"items" validate:"required,min=1,dive"`
}

func TestValidator_Describe(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email", Items: []sampleItem{{Quantity: 0}}})
	require.Error(t, err)

	desc := Describe(err)
	assert.Contains(t, desc, "email: email")
	assert.Contains(t, desc, "items[0].quantity: gt=0")
}

func TestValidator_Valid(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sampleRequest{Email: "a@example.com", Items: []sampleItem{{Quantity: 1}}}))
}
