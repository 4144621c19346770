package ui

import (
	"time"

	"github.com/aanand-mishra/students-client/internal/form"
	"github.com/aanand-mishra/students-client/internal/service"
)

// DefaultRedirectDelay is how long a success notice stays up before a
// form view returns to the list.
const DefaultRedirectDelay = 1500 * time.Millisecond

// formView is the part shared by the create and edit views: the form
// model, the success notice and the delayed return to the list.
type formView struct {
	binding
	nav   Navigator
	delay time.Duration
	form  *form.Student

	notice   string
	redirect *time.Timer
}

func newFormView(svc *service.Students, nav Navigator, delay time.Duration) formView {
	if delay <= 0 {
		delay = DefaultRedirectDelay
	}
	return formView{
		binding: binding{svc: svc},
		nav:     nav,
		delay:   delay,
		form:    form.New(),
	}
}

// Form exposes the form model.
func (v *formView) Form() *form.Student { return v.form }

// Set changes one form field.
func (v *formView) Set(field, value string) error {
	return v.form.Set(field, value)
}

// Notice returns the success notice, if any.
func (v *formView) Notice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notice
}

// ClearNotice hides the success notice.
func (v *formView) ClearNotice() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = ""
}

// Cancel returns to the list.
func (v *formView) Cancel() { v.nav.Navigate(PathList) }

// Deactivate drops bindings and stops a pending redirect.
func (v *formView) Deactivate() {
	v.mu.Lock()
	v.closed = true
	if v.redirect != nil {
		v.redirect.Stop()
		v.redirect = nil
	}
	v.mu.Unlock()
	v.subs.Close()
}

// gate blocks submission of an invalid form and reveals its messages.
func (v *formView) gate() error {
	if !v.form.Valid() {
		v.form.TouchAll()
		return form.ErrInvalid
	}
	return nil
}

// succeed shows notice and schedules the return to the list. Nothing is
// scheduled once the view is gone.
func (v *formView) succeed(notice string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.notice = notice
	if v.redirect != nil {
		v.redirect.Stop()
	}
	v.redirect = time.AfterFunc(v.delay, func() {
		v.nav.Navigate(PathList)
	})
}
