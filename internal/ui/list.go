package ui

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/aanand-mishra/students-client/internal/service"
	"github.com/aanand-mishra/students-client/internal/types"
)

// ListView shows the whole collection.
type ListView struct {
	binding
	nav     Navigator
	confirm Confirmer

	students []types.Student
}

// NewListView returns an inactive list view.
func NewListView(svc *service.Students, nav Navigator, confirm Confirmer) *ListView {
	return &ListView{
		binding: binding{svc: svc},
		nav:     nav,
		confirm: confirm,
	}
}

// Activate binds to the snapshot and fetches the collection once.
func (v *ListView) Activate(ctx context.Context, _ Route) error {
	if !v.bind() {
		return nil
	}
	v.subs.Add(v.svc.Data.Subscribe(func(list []types.Student) {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.students = list
	}))

	v.load(ctx)
	return nil
}

// Deactivate drops the bindings.
func (v *ListView) Deactivate() {
	v.unbind()
}

func (v *ListView) load(ctx context.Context) {
	// The error signal carries the failure; nothing to do locally.
	_, _ = v.svc.ListAll(ctx)
}

// Students returns the rows currently shown.
func (v *ListView) Students() []types.Student {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.students)
}

// Create opens the create form.
func (v *ListView) Create() { v.nav.Navigate(PathCreate) }

// Edit opens the edit form for id.
func (v *ListView) Edit(id int64) { v.nav.Navigate(EditPath(id)) }

// View opens the detail page for id.
func (v *ListView) View(id int64) { v.nav.Navigate(DetailPath(id)) }

// Delete asks for confirmation and then deletes id. It returns
// ErrCancelled when the user says no.
func (v *ListView) Delete(ctx context.Context, id int64) error {
	prompt := fmt.Sprintf("Are you sure you want to delete %s?", v.nameOf(id))
	if !v.confirm.Confirm(prompt) {
		return ErrCancelled
	}
	return v.svc.Delete(ctx, id)
}

// Retry clears the banner and fetches the collection again.
func (v *ListView) Retry(ctx context.Context) {
	v.clearError()
	v.load(ctx)
}

// Render writes the list as a table.
func (v *ListView) Render(w io.Writer) error {
	return renderList(w, v.Students(), v.Loading(), v.ErrorMessage())
}

func (v *ListView) nameOf(id int64) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.students {
		if s.ID == id {
			return s.Name
		}
	}
	return fmt.Sprintf("student #%d", id)
}
