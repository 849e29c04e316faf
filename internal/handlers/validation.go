package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var paymentMethods = map[string]bool{
	"CASH":   true,
	"BANK":   true,
	"MOBILE": true,
	"CHEQUE": true,
}

// registerCustomValidators hooks domain-specific rules into gin's binding
// validator so malformed payloads are rejected before they reach a service.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return paymentMethods[fl.Field().String()]
	})
}
