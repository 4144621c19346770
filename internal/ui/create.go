package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aanand-mishra/students-client/internal/service"
)

// CreateView is the new-student form.
type CreateView struct {
	formView
}

// NewCreateView returns an inactive create view. delay <= 0 uses
// DefaultRedirectDelay.
func NewCreateView(svc *service.Students, nav Navigator, delay time.Duration) *CreateView {
	return &CreateView{formView: newFormView(svc, nav, delay)}
}

// Activate binds to loading and error. The form starts empty.
func (v *CreateView) Activate(_ context.Context, _ Route) error {
	v.bind()
	return nil
}

// Submit validates the form and creates the student. An invalid form
// returns form.ErrInvalid without calling the service; a backend failure
// is returned as is and the form keeps its values.
func (v *CreateView) Submit(ctx context.Context) error {
	if err := v.gate(); err != nil {
		return err
	}

	created, err := v.svc.Create(ctx, v.form.Value())
	if err != nil {
		return err
	}

	v.succeed(fmt.Sprintf("Student \"%s\" created successfully!", created.Name))
	return nil
}

// Render writes the form.
func (v *CreateView) Render(w io.Writer) error {
	return renderForm(w, "New student", v.form, v.Loading(), v.ErrorMessage(), v.Notice())
}
