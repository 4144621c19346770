// Package sqlite is the SQLite implementation of storage.Storage.
//
// Queries go through sqlx so rows scan straight into types.Student using
// its db tags, embedded input fields included.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/students-client/internal/config"
	"github.com/aanand-mishra/students-client/internal/storage"
	"github.com/aanand-mishra/students-client/internal/types"

	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS students (
	stdid    INTEGER PRIMARY KEY AUTOINCREMENT,
	stdname  TEXT NOT NULL,
	mobileno TEXT NOT NULL DEFAULT '',
	email    TEXT NOT NULL DEFAULT '',
	city     TEXT NOT NULL DEFAULT '',
	state    TEXT NOT NULL DEFAULT '',
	pincode  TEXT NOT NULL DEFAULT '',
	address1 TEXT NOT NULL DEFAULT '',
	address2 TEXT NOT NULL DEFAULT ''
)`

const columns = `stdid, stdname, mobileno, email, city, state, pincode, address1, address2`

// SQLite holds the connection pool. It is safe for concurrent use.
type SQLite struct {
	Db *sqlx.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the database named by cfg.StoragePath.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open opens (or creates) the database file at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s, err := NewWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an open handle and creates the students table.
func NewWithDB(db *sqlx.DB) (*SQLite, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: create table: %w", err)
	}
	return &SQLite{Db: db}, nil
}

func (s *SQLite) CreateStudent(ctx context.Context, in types.CreateStudentInput) (int64, error) {
	result, err := s.Db.NamedExecContext(ctx, `
		INSERT INTO students (stdname, mobileno, email, city, state, pincode, address1, address2)
		VALUES (:stdname, :mobileno, :email, :city, :state, :pincode, :address1, :address2)`, in)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	var st types.Student
	err := s.Db.GetContext(ctx, &st,
		`SELECT `+columns+` FROM students WHERE stdid = ? LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: %w", err)
	}
	return st, nil
}

func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)
	if err := s.Db.SelectContext(ctx, &students,
		`SELECT `+columns+` FROM students ORDER BY stdid`); err != nil {
		return nil, fmt.Errorf("GetStudents: %w", err)
	}
	return students, nil
}

func (s *SQLite) UpdateStudentByID(ctx context.Context, id int64, in types.CreateStudentInput) error {
	result, err := s.Db.NamedExecContext(ctx, `
		UPDATE students SET
			stdname = :stdname, mobileno = :mobileno, email = :email,
			city = :city, state = :state, pincode = :pincode,
			address1 = :address1, address2 = :address2
		WHERE stdid = :stdid`, types.Student{ID: id, CreateStudentInput: in})
	if err != nil {
		return fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}
	return affected(result, id)
}

func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	result, err := s.Db.ExecContext(ctx, `DELETE FROM students WHERE stdid = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}
	return affected(result, id)
}

// Close releases the pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

func affected(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
