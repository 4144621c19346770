package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aanand-mishra/students-client/internal/form"
	"github.com/aanand-mishra/students-client/internal/service"
)

// EditView is the form for an existing student.
type EditView struct {
	formView

	id            int64
	loadingRecord bool
}

// NewEditView returns an inactive edit view.
func NewEditView(svc *service.Students, nav Navigator, delay time.Duration) *EditView {
	return &EditView{formView: newFormView(svc, nav, delay)}
}

// Activate loads the record named by the route into the form.
func (v *EditView) Activate(ctx context.Context, route Route) error {
	if !v.bind() {
		return nil
	}

	v.mu.Lock()
	v.id = route.ID
	v.mu.Unlock()
	if route.ID <= 0 {
		return fmt.Errorf("edit: missing student id")
	}

	v.setLoadingRecord(true)
	defer v.setLoadingRecord(false)

	// On failure the error signal carries the message and the form
	// stays empty.
	if st, err := v.svc.GetByID(ctx, route.ID); err == nil {
		v.form.Patch(st)
	}
	return nil
}

// ID returns the id being edited.
func (v *EditView) ID() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.id
}

// LoadingRecord reports whether the initial fetch is still running.
func (v *EditView) LoadingRecord() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadingRecord
}

// Submit validates the form and saves it.
func (v *EditView) Submit(ctx context.Context) error {
	id := v.ID()
	if id <= 0 {
		v.form.TouchAll()
		return form.ErrInvalid
	}
	if err := v.gate(); err != nil {
		return err
	}

	if err := v.svc.Update(ctx, id, v.form.Value()); err != nil {
		return err
	}

	v.succeed("Student updated successfully!")
	return nil
}

// Render writes the form, or a placeholder while the record loads.
func (v *EditView) Render(w io.Writer) error {
	if v.LoadingRecord() {
		_, err := fmt.Fprintf(w, "Loading student #%d...\n", v.ID())
		return err
	}
	title := fmt.Sprintf("Edit student #%d", v.ID())
	return renderForm(w, title, v.form, v.Loading(), v.ErrorMessage(), v.Notice())
}

func (v *EditView) setLoadingRecord(b bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingRecord = b
}
