// Package forms validates user input locally before it is sent to the
// backend. An invalid form never reaches the network.
package forms

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

const passwordSpecials = "@#$%^&+=!"

var (
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@#$%^&+=!]{8,20}$`)
	phonePattern    = regexp.MustCompile(`^\d{10}$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		mustRegister(v, "trimmedmin", trimmedMin)
		mustRegister(v, "password", strongPassword)
		mustRegister(v, "phone", tenDigitPhone)
		mustRegister(v, "localdatetime", localDateTime)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: register %q: %v", tag, err))
	}
}

// trimmedMin requires at least N characters once surrounding whitespace is
// removed
func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= n
}

// strongPassword requires 8-20 characters from the allowed set with at
// least one letter, one digit and one special character
func strongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !passwordCharset.MatchString(value) {
		return false
	}
	var letter, digit, special bool
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return letter && digit && special
}

func tenDigitPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func localDateTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := entities.ParseLocalDateTime(value)
	return err == nil
}

// Validate checks form against its validate tags. Failures are returned as
// *apperrors.ValidationErrors keyed by form field name, one message per
// field.
func Validate(form any) error {
	err := validatorInstance().Struct(form)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternalError("form validation failed", err)
	}

	out := &apperrors.ValidationErrors{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	label := labelFor(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email"
	case "min", "trimmedmin":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "password":
		return "Password must be 8-20 characters with at least one letter, one digit and one of " + passwordSpecials
	case "phone":
		return "Phone number must be exactly 10 digits"
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "localdatetime":
		return label + " must be a date and time like 2030-05-01T09:30"
	default:
		return label + " is invalid"
	}
}

// labelFor turns a field name such as "timeSlotStart" or "confirm_password"
// into "Time slot start" or "Confirm password"
func labelFor(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
