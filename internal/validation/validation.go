// Package validation owns the student rule set.
//
// The same *validator.Validate is used by the sandbox HTTP handlers (to
// reject bad payloads) and by the client form (to show per-field messages
// before anything reaches the network), so both sides agree on what a
// valid student looks like.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Rule names a failed constraint in terms a form can act on.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMinLength Rule = "minlength"
	RuleMaxLength Rule = "maxlength"
	RuleEmail     Rule = "email"
	RulePattern   Rule = "pattern"
	RuleInvalid   Rule = "invalid"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9\-\+\(\)\s]+$`)
	pincodePattern = regexp.MustCompile(`^[0-9\-]+$`)

	// emailPattern follows the browser form rule: a dot in the domain is
	// not required, so "ann@example" is accepted.
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
)

const (
	maxEmailLength = 254
	maxLocalLength = 64
)

// labels maps JSON field names to the text shown to the user.
var labels = map[string]string{
	"stdname":  "Name",
	"mobileno": "Mobile number",
	"email":    "Email",
	"city":     "City",
	"state":    "State",
	"pincode":  "Pincode",
	"address1": "Address line 1",
	"address2": "Address line 2",
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom "phone" and
// "pincode" tags registered and "email" replaced by the looser form rule. Field names in errors are the JSON names.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Both patterns accept an empty value; "omitempty" sits in front
		// of them in the struct tags anyway.
		_ = v.RegisterValidation("phone", matchOrEmpty(phonePattern))
		_ = v.RegisterValidation("pincode", matchOrEmpty(pincodePattern))
		_ = v.RegisterValidation("email", email)
		validate = v
	})
	return validate
}

func matchOrEmpty(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || re.MatchString(s)
	}
}

func email(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	local, _, ok := strings.Cut(s, "@")
	if !ok || len(s) > maxEmailLength || len(local) > maxLocalLength {
		return false
	}
	return emailPattern.MatchString(s)
}

// FieldError is one failed constraint on one field.
type FieldError struct {
	Field   string // JSON name, e.g. "stdname"
	Rule    Rule
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Struct validates v and returns one FieldError per failing field, in
// struct order. A nil slice means v is valid.
func Struct(v any) []FieldError {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Rule: RuleInvalid, Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Describe(fe))
	}
	return out
}

// Describe converts a validator.FieldError into a FieldError with a
// human-readable message.
func Describe(fe validator.FieldError) FieldError {
	field := fe.Field()
	label := Label(field)

	switch fe.Tag() {
	case "required":
		return FieldError{field, RuleRequired, fmt.Sprintf("%s is required", label)}
	case "min":
		return FieldError{field, RuleMinLength,
			fmt.Sprintf("%s must be at least %s characters", label, fe.Param())}
	case "max":
		return FieldError{field, RuleMaxLength,
			fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())}
	case "email":
		return FieldError{field, RuleEmail, "Please enter a valid email"}
	case "phone":
		return FieldError{field, RulePattern,
			"Please enter a valid phone number (digits, spaces and + - ( ) only)"}
	case "pincode":
		return FieldError{field, RulePattern,
			"Please enter a valid pincode (digits and hyphen only)"}
	default:
		return FieldError{field, RuleInvalid, "Invalid input"}
	}
}

// Label returns the display label for a JSON field name.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// Join renders field errors as a single sentence, e.g. for an HTTP
// error body.
func Join(errs []FieldError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, ", ")
}
