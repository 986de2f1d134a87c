package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field errors are reported with their JSON names.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. It fails fast: only the
// first failing field, in declaration order, is reported.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fieldError(ve[0])
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) *domain.ValidationError {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, "%s is required", field)
	case "email":
		return domain.NewValidationError(field, "%s must be a valid email", field)
	case "min":
		if isString {
			return domain.NewValidationError(field, "%s length must be at least %s characters long", field, fe.Param())
		}
		return domain.NewValidationError(field, "%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isString {
			return domain.NewValidationError(field, "%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return domain.NewValidationError(field, "%s must be less than or equal to %s", field, fe.Param())
	case "gte":
		return domain.NewValidationError(field, "%s must be greater than or equal to %s", field, fe.Param())
	default:
		return domain.NewValidationError(field, "%s failed validation (%s)", field, fe.Tag())
	}
}

// normalizer is implemented by request types that clean up their own input
// (whitespace trimming) before validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the JSON body into req, normalizes it, and runs
// the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
