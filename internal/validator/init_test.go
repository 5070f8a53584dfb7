package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type levelRequest struct {
	Difficulty string `validate:"required,level" binding:"required,level"`
}

func TestLevelValidation(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{in: "easy", valid: true},
		{in: "Medium", valid: true},
		{in: "hard", valid: true},
		{in: "nightmare", valid: false},
		{in: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := Struct(levelRequest{Difficulty: tt.in})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterGinValidations(t *testing.T) {
	require.NoError(t, RegisterGinValidations())

	assert.NoError(t, binding.Validator.ValidateStruct(&levelRequest{Difficulty: "hard"}))
	assert.Error(t, binding.Validator.ValidateStruct(&levelRequest{Difficulty: "impossible"}))
}
