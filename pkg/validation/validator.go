package validation

import (
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/pkg/errors"
)

var serialPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{2,63}$`)

// Validator validates request payloads and strips markup from free text.
type Validator struct {
	validator *validator.Validate
	logger    *zap.Logger
	sanitizer *bluemonday.Policy
}

// NewValidator creates a validator with the inventory-specific tags
// registered: objectid and serial.
func NewValidator(logger *zap.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals are validated as float64 so gte/lte work on money fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation("serial", func(fl validator.FieldLevel) bool {
		return serialPattern.MatchString(fl.Field().String())
	})

	return &Validator{
		validator: v,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// ValidateStruct validates s and returns an errors.Invalid carrying one field
// entry per failed constraint.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Invalid.Explain("invalid request: %v", err)
	}

	out := errors.Invalid.Explain("request validation failed")
	for _, fe := range fieldErrs {
		out = out.WithField(fe.Tag(), fieldPath(fe), message(fe))
	}
	v.logger.Debug("request validation failed", zap.Int("fields", len(fieldErrs)))
	return out
}

// maxSanitizePasses bounds how many layers of entity encoding are unwrapped.
const maxSanitizePasses = 4

// Sanitize removes any markup from input, including markup hidden behind
// entity encoding, and trims surrounding whitespace. Call it before
// ValidateStruct so required fields cannot be satisfied by markup alone.
func (v *Validator) Sanitize(input string) string {
	out := strings.TrimSpace(input)
	for i := 0; i < maxSanitizePasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(v.sanitizer.Sanitize(out)))
		if next == out {
			return out
		}
		out = next
	}
	// Still decoding into new markup: keep the escaped form.
	return strings.TrimSpace(v.sanitizer.Sanitize(out))
}

// SanitizeAll sanitizes each non-nil string in place.
func (v *Validator) SanitizeAll(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = v.Sanitize(*f)
		}
	}
}

// fieldPath drops the root struct name: "CreateLaptopRequest.specs.ram_gb" -> "specs.ram_gb".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "objectid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "serial":
		return fmt.Sprintf("%s must be 3-64 letters, digits or dashes", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
