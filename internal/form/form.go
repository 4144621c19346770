// Package form holds the student form model shared by the create and
// edit views: current values, which fields the user has touched, and
// the validation result recomputed after every change.
package form

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aanand-mishra/students-client/internal/types"
	"github.com/aanand-mishra/students-client/internal/validation"
)

// ErrInvalid is returned by a submit that was blocked by validation.
var ErrInvalid = errors.New("form is invalid")

// Field names, in display order. They match the JSON wire names so
// validation errors map straight onto them.
const (
	Name     = "stdname"
	Mobile   = "mobileno"
	Email    = "email"
	City     = "city"
	State    = "state"
	Pincode  = "pincode"
	Address1 = "address1"
	Address2 = "address2"
)

// Fields lists every field of the student form.
var Fields = []string{Name, Mobile, Email, City, State, Pincode, Address1, Address2}

// Student is the form model. The zero value is not usable; call New.
type Student struct {
	mu      sync.Mutex
	values  types.CreateStudentInput
	touched map[string]bool
	errs    map[string]validation.FieldError
}

// New returns an empty form with its initial validation computed.
func New() *Student {
	f := &Student{touched: make(map[string]bool)}
	f.revalidate()
	return f
}

// Set changes one field, marks it touched and re-runs validation.
func (f *Student) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.ptr(field)
	if p == nil {
		return fmt.Errorf("unknown field %q", field)
	}
	*p = value
	f.touched[field] = true
	f.revalidate()
	return nil
}

// Get returns the current value of field.
func (f *Student) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.ptr(field); p != nil {
		return *p
	}
	return ""
}

// Patch fills the form from an existing record without touching any
// field. The id is not part of the form and is dropped.
func (f *Student) Patch(s types.Student) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = s.Input()
	f.revalidate()
}

// Value returns the payload to send to the backend.
func (f *Student) Value() types.CreateStudentInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Valid reports whether every field passes validation.
func (f *Student) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errs) == 0
}

// TouchAll marks every field touched so all messages become visible.
func (f *Student) TouchAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range Fields {
		f.touched[name] = true
	}
}

// Touched reports whether field has been touched.
func (f *Student) Touched(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

// Error returns the validation failure for field, touched or not.
func (f *Student) Error(field string) (validation.FieldError, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.errs[field]
	return e, ok
}

// Message returns the message to display for field: empty until the
// field is touched or while it is valid.
func (f *Student) Message(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.touched[field] {
		return ""
	}
	return f.errs[field].Message
}

func (f *Student) revalidate() {
	f.errs = make(map[string]validation.FieldError)
	for _, e := range validation.Struct(f.values) {
		f.errs[e.Field] = e
	}
}

func (f *Student) ptr(field string) *string {
	switch field {
	case Name:
		return &f.values.Name
	case Mobile:
		return &f.values.Mobile
	case Email:
		return &f.values.Email
	case City:
		return &f.values.City
	case State:
		return &f.values.State
	case Pincode:
		return &f.values.Pincode
	case Address1:
		return &f.values.Address1
	case Address2:
		return &f.values.Address2
	}
	return nil
}
