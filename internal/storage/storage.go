// Package storage defines the Storage interface the sandbox API is
// written against.
//
// Handlers depend only on this contract, so tests can pass a fake and the
// SQLite implementation can be swapped without touching the HTTP layer.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-client/internal/types"
)

// ErrNotFound is returned when no row has the requested id.
var ErrNotFound = errors.New("student not found")

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a record and returns its generated id.
	CreateStudent(ctx context.Context, in types.CreateStudentInput) (int64, error)

	// GetStudentByID returns ErrNotFound for an unknown id.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every record ordered by id. Never nil.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID replaces every editable field of the record.
	// Returns ErrNotFound when nothing matched.
	UpdateStudentByID(ctx context.Context, id int64, in types.CreateStudentInput) error

	// DeleteStudentByID returns ErrNotFound when nothing matched.
	DeleteStudentByID(ctx context.Context, id int64) error

	Close() error
}
