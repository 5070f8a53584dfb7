package validator

import (
	"errors"

	"ctchen222/tic-tac-toe-solo/internal/game"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := registerCustom(validate); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

// Struct validates a struct against its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// RegisterGinValidations adds the custom rules to gin's binding validator so
// request models can use them in `binding` tags.
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not a go-playground validator")
	}
	return registerCustom(v)
}

func registerCustom(v *validator.Validate) error {
	// "level" accepts the difficulty names understood by game.ParseLevel.
	return v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		_, err := game.ParseLevel(fl.Field().String())
		return err == nil
	})
}
