package validator

import (
	stderrors "errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/cairogo-gateway/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("password", validatePassword)
	_ = validate.RegisterValidation("sortkey", validateSortKey)
}

// Validate - validates a struct; field errors come back as ErrValidationFailed
// with a field -> rule map in details.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ErrInvalidRequest.Wrap(err)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[lowerFirst(fe.Field())] = fe.Tag()
	}
	return errors.ErrValidationFailed.WithDetails(details)
}

// GetValidator - the shared validator for custom configuration
func GetValidator() *validator.Validate {
	return validate
}

// validatePassword - at least 8 characters with one letter and one digit
func validatePassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

var sortKeys = map[string]struct{}{
	"":             {},
	"rating_desc":  {},
	"rating_asc":   {},
	"price_desc":   {},
	"price_asc":    {},
	"distance_asc": {},
	"relevance":    {},
}

func validateSortKey(fl validator.FieldLevel) bool {
	_, ok := sortKeys[strings.ToLower(fl.Field().String())]
	return ok
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
