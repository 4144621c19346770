package ui

import (
	"context"
	"sync"
	"testing"

	"github.com/aanand-mishra/students-client/internal/api"
	"github.com/aanand-mishra/students-client/internal/logger"
	"github.com/aanand-mishra/students-client/internal/service"
	"github.com/aanand-mishra/students-client/internal/types"
)

// memBackend is an in-memory stand-in for the REST backend.
type memBackend struct {
	mu     sync.Mutex
	nextID int64
	rows   []types.Student
	fail   error
	calls  map[string]int
}

func newMemBackend(rows ...types.Student) *memBackend {
	b := &memBackend{nextID: 100, calls: make(map[string]int)}
	b.rows = append(b.rows, rows...)
	return b
}

func (b *memBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *memBackend) setFail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = err
}

func (b *memBackend) enter(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
	return b.fail
}

func (b *memBackend) List(context.Context) ([]types.Student, error) {
	if err := b.enter("list"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]types.Student(nil), b.rows...), nil
}

func (b *memBackend) Get(_ context.Context, id int64) (types.Student, error) {
	if err := b.enter("get"); err != nil {
		return types.Student{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return types.Student{}, &api.Error{StatusCode: 404, Message: "no student found"}
}

func (b *memBackend) Create(_ context.Context, in types.CreateStudentInput) (types.Student, error) {
	if err := b.enter("create"); err != nil {
		return types.Student{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	s := types.Student{ID: b.nextID, CreateStudentInput: in}
	b.rows = append(b.rows, s)
	return s, nil
}

func (b *memBackend) Update(_ context.Context, id int64, in types.CreateStudentInput) error {
	if err := b.enter("update"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.rows {
		if b.rows[i].ID == id {
			b.rows[i] = b.rows[i].Merge(in)
		}
	}
	return nil
}

func (b *memBackend) Delete(_ context.Context, id int64) error {
	if err := b.enter("delete"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.rows {
		if b.rows[i].ID == id {
			b.rows = append(b.rows[:i], b.rows[i+1:]...)
			break
		}
	}
	return nil
}

// recorder is a Navigator that remembers where it was sent.
type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func yes(string) bool { return true }
func no(string) bool  { return false }

func newService(t *testing.T, b service.Backend) *service.Students {
	t.Helper()
	return service.New(b, logger.Discard())
}

func st(id int64, name string) types.Student {
	return types.Student{ID: id, CreateStudentInput: types.CreateStudentInput{Name: name}}
}
