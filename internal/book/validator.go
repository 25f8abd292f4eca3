package book

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation matches every ValidationErrors value via errors.Is.
var ErrValidation = errors.New("invalid book")

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(validate, "notblank", validateNotBlank)
	mustRegister(validate, "finite", validateFinite)
}

// mustRegister adds a custom rule and panics if the validator rejects it.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("book: register %q validation: %v", tag, err))
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors lists every field that failed validation, in field order.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return "invalid book: " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field is among the failures.
func (e ValidationErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Fields returns the names of the failed fields.
func (e ValidationErrors) Fields() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fe.Field
	}
	return out
}

// Validate checks in against the record invariants. It returns nil or a
// ValidationErrors value. Callers are expected to Normalize first.
func Validate(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate book: %w", err)
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return out
}

func messageFor(field, tag string) string {
	switch tag {
	case "notblank":
		return fmt.Sprintf("%s is required", field)
	case "finite":
		return fmt.Sprintf("%s must be a finite number", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than zero", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ParsePrice parses user supplied price text. Both "25.90" and "25,90" are
// accepted. Failures come back as a ValidationErrors value for "price".
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ValidationErrors{{Field: "price", Message: "price is required"}}
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ValidationErrors{{Field: "price", Message: "price must be a number"}}
	}
	return v, nil
}
