package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-client/internal/storage"
	"github.com/aanand-mishra/students-client/internal/types"
)

var cols = []string{"stdid", "stdname", "mobileno", "email", "city", "state", "pincode", "address1", "address2"}

func newMock(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS students").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := NewWithDB(sqlx.NewDb(db, "sqlite3"))
	require.NoError(t, err)
	return s, mock
}

func TestCreateStudentReturnsID(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec("INSERT INTO students").
		WithArgs("Asha", "", "asha@example.com", "Pune", "", "411001", "", "").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := s.CreateStudent(context.Background(), types.CreateStudentInput{
		Name: "Asha", Email: "asha@example.com", City: "Pune", Pincode: "411001",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentByIDScansEmbeddedFields(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(`SELECT (.+) FROM students WHERE stdid = \?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, "Ravi", "98765", "", "Delhi", "DL", "110001", "1 Ring Rd", ""))

	st, err := s.GetStudentByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), st.ID)
	assert.Equal(t, "Ravi", st.Name)
	assert.Equal(t, "110001", st.Pincode)
	assert.Equal(t, "1 Ring Rd", st.Address1)
}

func TestGetStudentByIDNotFound(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(`SELECT (.+) FROM students WHERE stdid = \?`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(cols))

	_, err := s.GetStudentByID(context.Background(), 9)

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetStudentsEmptyIsNotNil(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(`SELECT (.+) FROM students ORDER BY stdid`).
		WillReturnRows(sqlmock.NewRows(cols))

	list, err := s.GetStudents(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUpdateStudentNoRows(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec("UPDATE students SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateStudentByID(context.Background(), 4, types.CreateStudentInput{Name: "Asha"})

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteStudentPropagatesDBError(t *testing.T) {
	s, mock := newMock(t)
	boom := errors.New("disk I/O error")
	mock.ExpectExec("DELETE FROM students").
		WithArgs(int64(4)).
		WillReturnError(boom)

	err := s.DeleteStudentByID(context.Background(), 4)

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestInMemoryRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	in := types.CreateStudentInput{Name: "Meera", Mobile: "+91 98450 12345", City: "Bengaluru"}
	id, err := s.CreateStudent(ctx, in)
	require.NoError(t, err)

	got, err := s.GetStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: id, CreateStudentInput: in}, got)

	in.City = "Mysuru"
	require.NoError(t, s.UpdateStudentByID(ctx, id, in))
	got, err = s.GetStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mysuru", got.City)

	list, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteStudentByID(ctx, id))
	assert.ErrorIs(t, s.DeleteStudentByID(ctx, id), storage.ErrNotFound)
	_, err = s.GetStudentByID(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
