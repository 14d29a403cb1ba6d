package validator

import (
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// "mark" accepts "", "X" and "O".
	if err := validate.RegisterValidation("mark", func(fl validator.FieldLevel) bool {
		return game.Mark(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}
