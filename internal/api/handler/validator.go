package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{6,30}$`)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(form).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in errors are the form field names, not the Go field names.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return strings.ToLower(f.Name)
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// FieldErrors maps form field names to user-facing messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fe[k])
	}
	return strings.Join(msgs, "; ")
}

// Validate satisfies the echo.Validator interface. Constraint violations come
// back as FieldErrors; anything else is returned unchanged.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make(FieldErrors, len(ve))
			for _, fe := range ve {
				out[fe.Field()] = fieldError(fe)
			}
			return out
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a message for the form.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", field)
	case "email":
		return fmt.Sprintf("El campo %s debe ser un email válido.", field)
	case "max":
		return fmt.Sprintf("El campo %s admite como máximo %s caracteres.", field, fe.Param())
	case "min":
		return fmt.Sprintf("El campo %s requiere al menos %s caracteres.", field, fe.Param())
	case "phone":
		return fmt.Sprintf("El campo %s debe ser un teléfono válido.", field)
	default:
		return fmt.Sprintf("El campo %s no es válido (%s).", field, fe.Tag())
	}
}
