// Package student holds the sandbox API's handlers for the Student
// resource.
//
// Each exported function is a factory: it takes the storage once at
// startup and returns the http.HandlerFunc that runs per request.
//
//	GET    /api/Student        list
//	GET    /api/Student/{id}   one record, 404 when unknown
//	POST   /api/Student        create, 201 with the stored record
//	PUT    /api/Student/{id}   replace, 204
//	DELETE /api/Student/{id}   delete, 204
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/students-client/internal/storage"
	"github.com/aanand-mishra/students-client/internal/types"
	"github.com/aanand-mishra/students-client/internal/utils/response"
	"github.com/aanand-mishra/students-client/internal/validation"
)

// Collection is the resource path.
const Collection = "/api/Student"

// Register mounts every Student route on mux.
func Register(mux *http.ServeMux, s storage.Storage) {
	mux.HandleFunc("GET "+Collection, GetList(s))
	mux.HandleFunc("POST "+Collection, New(s))
	mux.HandleFunc("GET "+Collection+"/{id}", GetByID(s))
	mux.HandleFunc("PUT "+Collection+"/{id}", Update(s))
	mux.HandleFunc("DELETE "+Collection+"/{id}", Delete(s))
}

// New handles POST /api/Student.
func New(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		in, ok := decode(w, r)
		if !ok {
			return
		}

		id, err := s.CreateStudent(r.Context(), in)
		if err != nil {
			fail(w, "error creating student", err)
			return
		}

		created, err := s.GetStudentByID(r.Context(), id)
		if err != nil {
			fail(w, "error reading created student", err)
			return
		}

		slog.Info("student created", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /api/Student/{id}.
func GetByID(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		st, err := s.GetStudentByID(r.Context(), id)
		if err != nil {
			fail(w, "error getting student", err)
			return
		}
		response.WriteJSON(w, http.StatusOK, st)
	}
}

// GetList handles GET /api/Student.
func GetList(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		list, err := s.GetStudents(r.Context())
		if err != nil {
			fail(w, "error getting students", err)
			return
		}
		response.WriteJSON(w, http.StatusOK, list)
	}
}

// Update handles PUT /api/Student/{id}.
func Update(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		in, ok := decode(w, r)
		if !ok {
			return
		}

		if err := s.UpdateStudentByID(r.Context(), id, in); err != nil {
			fail(w, "error updating student", err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.NoContent(w)
	}
}

// Delete handles DELETE /api/Student/{id}.
func Delete(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := s.DeleteStudentByID(r.Context(), id); err != nil {
			fail(w, "error deleting student", err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.NoContent(w)
	}
}

// decode reads and validates the request body. On failure it has
// already written the 400.
func decode(w http.ResponseWriter, r *http.Request) (types.CreateStudentInput, bool) {
	var in types.CreateStudentInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return in, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return in, false
	}

	if errs := validation.Struct(in); len(errs) > 0 {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
		return in, false
	}
	return in, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be a positive integer")))
		return 0, false
	}
	return id, true
}

// fail maps storage errors to a status: 404 for unknown ids, 500 for
// the rest.
func fail(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}
	slog.Error(msg, slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
