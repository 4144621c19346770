package ui

import (
	"time"

	"github.com/aanand-mishra/students-client/internal/service"
)

// Register binds the four student views to r. Every navigation builds a
// fresh view, so no state carries over between visits.
func Register(r *Router, svc *service.Students, confirm Confirmer, delay time.Duration) {
	r.Handle(RouteList, func() View { return NewListView(svc, r, confirm) })
	r.Handle(RouteCreate, func() View { return NewCreateView(svc, r, delay) })
	r.Handle(RouteEdit, func() View { return NewEditView(svc, r, delay) })
	r.Handle(RouteDetail, func() View { return NewDetailView(svc, r, confirm) })
}
