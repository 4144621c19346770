// Package service is the client-side state container for students.
//
// Students is the single source of truth the views bind to. It keeps the
// last known snapshot of the collection and publishes three signals:
//
//	Data     the snapshot, replaced on every change
//	Loading  true while a request is in flight
//	Error    the last failure message, "" after any success
//
// Every mutation that succeeds on the backend is applied to the snapshot
// right away, so views never need to re-fetch after create/update/delete.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/aanand-mishra/students-client/internal/api"
	"github.com/aanand-mishra/students-client/internal/signal"
	"github.com/aanand-mishra/students-client/internal/types"
)

// FallbackMessage is published when a failure carries no usable text.
const FallbackMessage = "An error occurred"

// Backend is the REST contract the service depends on. *api.Client
// satisfies it.
type Backend interface {
	List(ctx context.Context) ([]types.Student, error)
	Get(ctx context.Context, id int64) (types.Student, error)
	Create(ctx context.Context, in types.CreateStudentInput) (types.Student, error)
	Update(ctx context.Context, id int64, in types.CreateStudentInput) error
	Delete(ctx context.Context, id int64) error
}

// Students owns the snapshot and the three signals. Build one per
// application with New and hand it to every view.
type Students struct {
	Data    *signal.Signal[[]types.Student]
	Loading *signal.Signal[bool]
	Error   *signal.Signal[string]

	backend Backend
	log     *slog.Logger

	// mu serializes settlement: a snapshot read-modify-write and the
	// publishes that follow it happen as one step.
	mu sync.Mutex
}

// New returns a service with an empty snapshot.
func New(backend Backend, log *slog.Logger) *Students {
	if log == nil {
		log = slog.Default()
	}
	return &Students{
		Data:    signal.New([]types.Student{}),
		Loading: signal.New(false),
		Error:   signal.New(""),
		backend: backend,
		log:     log,
	}
}

// Snapshot returns a copy of the current collection.
func (s *Students) Snapshot() []types.Student {
	return slices.Clone(s.Data.Get())
}

// ListAll fetches the whole collection and replaces the snapshot. On
// failure the snapshot is left as it was.
func (s *Students) ListAll(ctx context.Context) ([]types.Student, error) {
	s.begin()
	defer s.end()

	list, err := s.backend.List(ctx)
	if err != nil {
		return nil, s.fail("list students", err)
	}

	list = slices.Clone(list)
	s.settle(func() {
		s.Data.Set(list)
	})
	return slices.Clone(list), nil
}

// GetByID fetches one record. The snapshot is not touched.
func (s *Students) GetByID(ctx context.Context, id int64) (types.Student, error) {
	s.begin()
	defer s.end()

	student, err := s.backend.Get(ctx, id)
	if err != nil {
		return types.Student{}, s.fail("get student", err, slog.Int64("id", id))
	}

	s.settle(nil)
	return student, nil
}

// Create posts in and appends the returned record to the snapshot.
func (s *Students) Create(ctx context.Context, in types.CreateStudentInput) (types.Student, error) {
	s.begin()
	defer s.end()

	created, err := s.backend.Create(ctx, in)
	if err != nil {
		return types.Student{}, s.fail("create student", err)
	}

	s.settle(func() {
		current := s.Data.Get()
		next := make([]types.Student, 0, len(current)+1)
		next = append(next, current...)
		s.Data.Set(append(next, created))
	})
	return created, nil
}

// Update puts in and merges it into the matching snapshot entry.
//
// When no entry has the given id the snapshot stays as it is; nothing is
// inserted and nothing is re-fetched.
func (s *Students) Update(ctx context.Context, id int64, in types.CreateStudentInput) error {
	s.begin()
	defer s.end()

	if err := s.backend.Update(ctx, id, in); err != nil {
		return s.fail("update student", err, slog.Int64("id", id))
	}

	s.settle(func() {
		current := s.Data.Get()
		next := make([]types.Student, len(current))
		for i, st := range current {
			if st.ID == id {
				st = st.Merge(in)
			}
			next[i] = st
		}
		s.Data.Set(next)
	})
	return nil
}

// Delete removes the record on the backend and then from the snapshot.
func (s *Students) Delete(ctx context.Context, id int64) error {
	s.begin()
	defer s.end()

	if err := s.backend.Delete(ctx, id); err != nil {
		return s.fail("delete student", err, slog.Int64("id", id))
	}

	s.settle(func() {
		current := s.Data.Get()
		next := make([]types.Student, 0, len(current))
		for _, st := range current {
			if st.ID != id {
				next = append(next, st)
			}
		}
		s.Data.Set(next)
	})
	return nil
}

func (s *Students) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loading.Set(true)
}

func (s *Students) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loading.Set(false)
}

// settle applies a successful result and clears the error.
func (s *Students) settle(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if apply != nil {
		apply()
	}
	s.Error.Set("")
}

// fail logs err, publishes its message and hands err back for the caller.
func (s *Students) fail(op string, err error, attrs ...any) error {
	msg := Message(err)

	args := append([]any{slog.String("error", err.Error())}, attrs...)
	s.log.Error(op+" failed", args...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Error.Set(msg)
	return err
}

// Message picks the text to show for err: the server's message when the
// backend sent one, otherwise the error text, otherwise FallbackMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
