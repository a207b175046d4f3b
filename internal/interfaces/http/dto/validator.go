package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs custom binding validators on gin's
// validator engine. Must be called once before routes are registered.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not a validator.Validate")
	}
	return v.RegisterValidation("price", validPrice)
}

// validPrice accepts a positive decimal string with at most two
// fractional digits, matching the domain's price rules so malformed
// amounts are rejected at the binding boundary.
func validPrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive() && d.Exponent() >= -2
}
