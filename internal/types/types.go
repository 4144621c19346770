// Package types holds the student models shared by the api client, the
// state service, the form layer and the sandbox storage.
package types

// CreateStudentInput is the payload for both POST and PUT /Student.
//
// Struct tags:
//
//  1. json: the wire names used by the backend (stdname, mobileno…).
//
//  2. validate: rules checked by go-playground/validator. "phone"
//     and "pincode" are custom tags registered by internal/validation.
//
//  3. db: column names for sqlx in the sandbox storage.
type CreateStudentInput struct {
	Name     string `json:"stdname"  db:"stdname"  yaml:"stdname"  validate:"required,min=2,max=100"`
	Mobile   string `json:"mobileno" db:"mobileno" yaml:"mobileno" validate:"omitempty,max=15,phone"`
	Email    string `json:"email"    db:"email"    yaml:"email"    validate:"omitempty,max=100,email"`
	City     string `json:"city"     db:"city"     yaml:"city"     validate:"max=50"`
	State    string `json:"state"    db:"state"    yaml:"state"    validate:"max=50"`
	Pincode  string `json:"pincode"  db:"pincode"  yaml:"pincode"  validate:"omitempty,max=10,pincode"`
	Address1 string `json:"address1" db:"address1" yaml:"address1" validate:"max=255"`
	Address2 string `json:"address2" db:"address2" yaml:"address2" validate:"max=255"`
}

// Student represents a persisted student record.
//
// The input fields are embedded so the JSON shape stays flat:
//
//	{ "stdid": 7, "stdname": "Ann", "mobileno": "", ... }
//
// ID is assigned by the server and never changed by the client.
type Student struct {
	ID                 int64 `json:"stdid" db:"stdid" yaml:"stdid"`
	CreateStudentInput `yaml:",inline"`
}

// Input returns the editable part of the record.
func (s Student) Input() CreateStudentInput {
	return s.CreateStudentInput
}

// Merge returns s with every field of in laid over it. The ID is kept.
func (s Student) Merge(in CreateStudentInput) Student {
	s.CreateStudentInput = in
	return s
}
