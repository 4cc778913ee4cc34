package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/petalhub/florist_backend/internal/core/pricing"
)

// RegisterCustomValidations installs the project's custom binding tags on
// gin's validator. Call once at startup before routes are registered.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	// currencycode: empty is allowed (means INR); anything else must be in the
	// supported set.
	return v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if code == "" {
			return true
		}
		return pricing.SupportedCurrency(code)
	})
}
