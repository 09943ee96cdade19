package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Get returns the shared validator used for transport requests.
func Get() *validator.Validate {
	return validate
}
