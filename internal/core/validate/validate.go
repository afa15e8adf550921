// Package validate checks input shapes against their `validate` struct tags
// and turns violations into readable messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate

	slugRE = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Issue is one field-level violation.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error carries every violation found in one input.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a violation.
func (e *Error) Add(field, rule, message string) {
	e.Issues = append(e.Issues, Issue{Field: field, Rule: rule, Message: message})
}

// OrNil returns nil when no issue was recorded.
func (e *Error) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRE.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates s. It returns nil or an *Error.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		out := &Error{}
		out.Add("", "invalid", err.Error())
		return out
	}
	out := &Error{}
	for _, fe := range ves {
		out.Add(fe.Field(), fe.Tag(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	f, p := fe.Field(), fe.Param()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", f, p)
		}
		return fmt.Sprintf("%s must be at least %s", f, p)
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", f, p)
		}
		return fmt.Sprintf("%s must be at most %s", f, p)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", f, p)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", f, p)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f, p)
	case "email":
		return f + " must be a valid email"
	case "uuid":
		return f + " must be a valid UUID"
	case "url":
		return f + " must be a valid URL"
	case "numeric":
		return f + " must contain only digits"
	case "uppercase":
		return f + " must be uppercase"
	case "slug":
		return f + " must contain only lowercase letters, digits and dashes"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, strings.ReplaceAll(p, " ", ", "))
	case "isdefault":
		return f + " cannot be changed"
	default:
		return fmt.Sprintf("%s is invalid (%s)", f, fe.Tag())
	}
}
