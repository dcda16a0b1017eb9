package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)
	swiftCodeRe    = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

// RegisterValidators attaches custom validation tags to gin's binding
// validator. Call once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("currency_code", validCurrencyCode)
	v.RegisterValidation("swift_code", validSwiftCode)
}

func validCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRe.MatchString(fl.Field().String())
}

func validSwiftCode(fl validator.FieldLevel) bool {
	return swiftCodeRe.MatchString(fl.Field().String())
}
