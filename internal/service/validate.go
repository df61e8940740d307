package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// телефон в формате (11) 98765-4321; пробел и дефис необязательны
var phonePattern = regexp.MustCompile(`^\([0-9]{2}\)\s?[0-9]{4,5}-?[0-9]{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("br_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validEmail: адрес вида user@domain.tld.
func validEmail(s string) bool {
	if validate.Var(s, "email") != nil {
		return false
	}
	_, domain, _ := strings.Cut(s, "@")
	return strings.Contains(domain, ".")
}

func validPhone(s string) bool {
	return validate.Var(s, "br_phone") == nil
}
