package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/aanand-mishra/students-client/internal/service"
	"github.com/aanand-mishra/students-client/internal/types"
)

// DetailView shows one student, read-only.
type DetailView struct {
	binding
	nav     Navigator
	confirm Confirmer

	id      int64
	student *types.Student
}

// NewDetailView returns an inactive detail view.
func NewDetailView(svc *service.Students, nav Navigator, confirm Confirmer) *DetailView {
	return &DetailView{
		binding: binding{svc: svc},
		nav:     nav,
		confirm: confirm,
	}
}

// Activate fetches the student named by the route.
func (v *DetailView) Activate(ctx context.Context, route Route) error {
	if !v.bind() {
		return nil
	}

	v.mu.Lock()
	v.id = route.ID
	v.mu.Unlock()
	if route.ID <= 0 {
		return fmt.Errorf("detail: missing student id")
	}

	st, err := v.svc.GetByID(ctx, route.ID)
	if err == nil {
		v.mu.Lock()
		v.student = &st
		v.mu.Unlock()
	}
	return nil
}

// Deactivate drops the bindings.
func (v *DetailView) Deactivate() {
	v.unbind()
}

// Student returns the loaded record, or nil.
func (v *DetailView) Student() *types.Student {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.student == nil {
		return nil
	}
	st := *v.student
	return &st
}

// Edit opens the edit form for this student.
func (v *DetailView) Edit() {
	if st := v.Student(); st != nil {
		v.nav.Navigate(EditPath(st.ID))
	}
}

// Delete asks for confirmation, deletes the student and returns to the
// list. Without a loaded record it does nothing.
func (v *DetailView) Delete(ctx context.Context) error {
	st := v.Student()
	if st == nil {
		return nil
	}

	prompt := fmt.Sprintf("Are you sure you want to delete %s? This action cannot be undone.", st.Name)
	if !v.confirm.Confirm(prompt) {
		return ErrCancelled
	}
	if err := v.svc.Delete(ctx, st.ID); err != nil {
		return err
	}
	v.nav.Navigate(PathList)
	return nil
}

// Back returns to the list.
func (v *DetailView) Back() { v.nav.Navigate(PathList) }

// Render writes the record.
func (v *DetailView) Render(w io.Writer) error {
	v.mu.Lock()
	id := v.id
	v.mu.Unlock()
	return renderDetail(w, id, v.Student(), v.Loading(), v.ErrorMessage())
}
