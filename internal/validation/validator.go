// Package validation wraps go-playground/validator with the request rules
// and caller-facing messages the API uses.
//
// Structs declare their rules with `validate` tags and may set a `label`
// tag for the human name used in messages; otherwise the json name is used.
//
//	type RegisterInput struct {
//	    Username string `json:"username" label:"Username" validate:"required,min=3,max=50,username"`
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const MinYear = 1900

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error reports either the set of missing required fields or the first
// rule violation, in that order of precedence.
type Error struct {
	Missing []string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	}
	if len(e.Fields) > 0 {
		return e.Fields[0].Message
	}
	return "validation failed"
}

// Details is the payload placed under "details" in the error envelope.
func (e *Error) Details() map[string]interface{} {
	if len(e.Missing) > 0 {
		return map[string]interface{}{"missing_fields": e.Missing}
	}
	if len(e.Fields) > 0 {
		return map[string]interface{}{"field": e.Fields[0].Field}
	}
	return nil
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		// Registration on a fresh instance cannot fail for a non-empty tag.
		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})

	return validate
}

// Struct validates s. It returns nil on success.
func Struct(s interface{}) *Error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Tag: "invalid", Message: err.Error()}}}
	}

	labels := labelsOf(s)
	out := &Error{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			out.Missing = append(out.Missing, fe.Field())
			continue
		}
		label := labels[fe.StructField()]
		if label == "" {
			label = fe.Field()
		}
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(label, fe),
		})
	}
	return out
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s maximum %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "email":
		return "Invalid email format"
	case "username":
		return fmt.Sprintf("%s can only contain letters, numbers, and underscores", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt", "gte":
		return fmt.Sprintf("%s tidak valid", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// labelsOf maps struct field names to their `label` tag.
func labelsOf(s interface{}) map[string]string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	labels := make(map[string]string)
	if t == nil || t.Kind() != reflect.Struct {
		return labels
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if l := f.Tag.Get("label"); l != "" {
			labels[f.Name] = l
		}
	}
	return labels
}

// ValidateYear checks a 4-digit year within [MinYear, now.Year()+5].
func ValidateYear(year string, now time.Time) error {
	if !yearPattern.MatchString(year) {
		return errors.New("Tahun harus terdiri dari 4 digit angka")
	}
	maxYear := now.Year() + 5
	y, _ := strconv.Atoi(year)
	if y < MinYear || y > maxYear {
		return fmt.Errorf("Tahun harus antara %d dan %d", MinYear, maxYear)
	}
	return nil
}
