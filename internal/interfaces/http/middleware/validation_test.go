package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationLine struct {
	Quantity *int `json:"quantity" binding:"required,gte=1"`
}

type validationPayload struct {
	Name  string           `json:"name" binding:"required,min=1,max=5"`
	Kind  string           `json:"kind" binding:"omitempty,oneof=a b"`
	Lines []validationLine `json:"lines" binding:"dive"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	zero := 0
	err := binding.Validator.ValidateStruct(&validationPayload{
		Name:  "toolongname",
		Kind:  "c",
		Lines: []validationLine{{Quantity: &zero}, {}},
	})
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 4)

	byField := make(map[string]string, len(details))
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 5 characters", byField["name"])
	assert.Equal(t, "Must be one of: a b", byField["kind"])
	assert.Equal(t, "Must be greater than or equal to 1", byField["lines[0].quantity"])
	assert.Equal(t, "This field is required", byField["lines[1].quantity"])
}

func TestValidationDetails_NotValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("boom")))
	assert.Nil(t, ValidationDetails(nil))
}
