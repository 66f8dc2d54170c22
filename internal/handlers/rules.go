package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/fatukunda/partytime/internal/models"
	"github.com/fatukunda/partytime/internal/services"
	appValidator "github.com/fatukunda/partytime/pkg/validator"
)

// The request payloads reference these tags, so they are registered before
// any handler runs.
func init() {
	mustRegister("gender", func(fl validator.FieldLevel) bool {
		return models.ValidGender(fl.Field().String())
	})
	mustRegister("party_category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(fl.Field().String())
	})
	mustRegister("password", func(fl validator.FieldLevel) bool {
		return services.AcceptablePassword(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := appValidator.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
