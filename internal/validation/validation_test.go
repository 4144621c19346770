package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-client/internal/types"
	"github.com/aanand-mishra/students-client/internal/validation"
)

func TestStructAcceptsNameOnly(t *testing.T) {
	errs := validation.Struct(types.CreateStudentInput{Name: "Ann"})
	assert.Nil(t, errs)
}

func TestStructRules(t *testing.T) {
	tests := []struct {
		name    string
		in      types.CreateStudentInput
		field   string
		rule    validation.Rule
		message string
	}{
		{"empty name", types.CreateStudentInput{}, "stdname", validation.RuleRequired, "Name is required"},
		{"short name", types.CreateStudentInput{Name: "A"}, "stdname", validation.RuleMinLength,
			"Name must be at least 2 characters"},
		{"long name", types.CreateStudentInput{Name: strings.Repeat("a", 101)}, "stdname", validation.RuleMaxLength,
			"Name cannot exceed 100 characters"},
		{"bad phone", types.CreateStudentInput{Name: "Ann", Mobile: "12ab"}, "mobileno", validation.RulePattern, ""},
		{"long phone", types.CreateStudentInput{Name: "Ann", Mobile: strings.Repeat("1", 16)}, "mobileno",
			validation.RuleMaxLength, ""},
		{"bad email", types.CreateStudentInput{Name: "Ann", Email: "not-an-email"}, "email", validation.RuleEmail,
			"Please enter a valid email"},
		{"bad pincode", types.CreateStudentInput{Name: "Ann", Pincode: "12A34"}, "pincode", validation.RulePattern,
			"Please enter a valid pincode (digits and hyphen only)"},
		{"long city", types.CreateStudentInput{Name: "Ann", City: strings.Repeat("c", 51)}, "city",
			validation.RuleMaxLength, "City cannot exceed 50 characters"},
		{"long address", types.CreateStudentInput{Name: "Ann", Address2: strings.Repeat("x", 256)}, "address2",
			validation.RuleMaxLength, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.Struct(tt.in)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.rule, errs[0].Rule)
			if tt.message != "" {
				assert.Equal(t, tt.message, errs[0].Message)
			}
		})
	}
}

func TestStructAcceptsFullRecord(t *testing.T) {
	in := types.CreateStudentInput{
		Name:     "Ravi Kumar",
		Mobile:   "+91 (98) 765-4321",
		Email:    "ravi@example.com",
		City:     "Pune",
		State:    "MH",
		Pincode:  "411-001",
		Address1: "12 MG Road",
	}
	assert.Empty(t, validation.Struct(in))
}

func TestStructValidatesEmbeddedInput(t *testing.T) {
	s := types.Student{ID: 3, CreateStudentInput: types.CreateStudentInput{Name: "x"}}
	errs := validation.Struct(s)
	require.Len(t, errs, 1)
	assert.Equal(t, "stdname", errs[0].Field)
}

func TestJoin(t *testing.T) {
	errs := validation.Struct(types.CreateStudentInput{Email: "bad"})
	assert.Equal(t, "Name is required, Please enter a valid email", validation.Join(errs))
}

func TestEmailRule(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ravi@example.com", true},
		{"ann@example", true},
		{"a@b", true},
		{"first.last+tag@mail-host.in", true},
		{"not-an-email", false},
		{"ann@", false},
		{"@example.com", false},
		{"ann@-host", false},
		{"ann..b@example.com", false},
		{"ann b@example.com", false},
		{strings.Repeat("a", 65) + "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			errs := validation.Struct(types.CreateStudentInput{Name: "Ann", Email: tt.email})
			if tt.valid {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, validation.RuleEmail, errs[0].Rule)
		})
	}
}
