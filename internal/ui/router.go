// Package ui contains the view controllers and the router that switches
// between them.
//
// A view binds to the service signals when it is activated, turns user
// actions into service calls, and drops its bindings when it is
// deactivated. Rendering is plain text; the shell decides where it goes.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

// Route names.
const (
	RouteList   = "list"
	RouteCreate = "create"
	RouteEdit   = "edit"
	RouteDetail = "detail"
)

// PathList is the default route; unknown paths land here.
const PathList = "/list"

// PathCreate is the create-form route.
const PathCreate = "/create"

// EditPath returns the edit route for id.
func EditPath(id int64) string { return fmt.Sprintf("/edit/%d", id) }

// DetailPath returns the detail route for id.
func DetailPath(id int64) string { return fmt.Sprintf("/detail/%d", id) }

// Route is a resolved navigation target.
type Route struct {
	Name string
	Path string
	ID   int64 // set for edit and detail
}

// Navigator moves the application to another route.
type Navigator interface {
	Navigate(path string)
}

// Factory builds a fresh view for a route.
type Factory func() View

// Router resolves paths, owns the active view and swaps views on
// navigation. It is safe for use from several goroutines; delayed
// navigations arrive from timer goroutines.
type Router struct {
	ctx     context.Context
	log     *slog.Logger
	matcher *mux.Router

	mu        sync.Mutex
	factories map[string]Factory
	route     Route
	view      View
	onChange  func(Route, View)
}

// NewRouter returns a router with the four student routes registered.
// ctx is handed to every view activation.
func NewRouter(ctx context.Context, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	m := mux.NewRouter()
	m.Path(PathList).Name(RouteList)
	m.Path(PathCreate).Name(RouteCreate)
	m.Path("/edit/{id:[0-9]+}").Name(RouteEdit)
	m.Path("/detail/{id:[0-9]+}").Name(RouteDetail)

	return &Router{
		ctx:       ctx,
		log:       log,
		matcher:   m,
		factories: make(map[string]Factory),
	}
}

// Handle binds a view factory to a route name.
func (r *Router) Handle(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// OnChange registers fn to run after every completed navigation.
func (r *Router) OnChange(fn func(Route, View)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Resolve maps a path to a route. Anything that does not match one of
// the registered patterns resolves to the list.
func (r *Router) Resolve(path string) Route {
	fallback := Route{Name: RouteList, Path: PathList}

	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return fallback
	}

	var match mux.RouteMatch
	if !r.matcher.Match(req, &match) || match.Route == nil {
		return fallback
	}

	route := Route{Name: match.Route.GetName(), Path: req.URL.Path}
	if raw, ok := match.Vars["id"]; ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return fallback
		}
		route.ID = id
	}
	return route
}

// Navigate deactivates the current view, then builds and activates the
// view for path.
func (r *Router) Navigate(path string) {
	route := r.Resolve(path)
	if route.Path != path {
		r.log.Debug("redirecting", slog.String("from", path), slog.String("to", route.Path))
	}

	r.mu.Lock()
	if r.view != nil {
		r.view.Deactivate()
		r.view = nil
	}
	factory, ok := r.factories[route.Name]
	if !ok {
		r.mu.Unlock()
		r.log.Error("no view registered", slog.String("route", route.Name))
		return
	}
	view := factory()
	r.route = route
	r.view = view
	onChange := r.onChange
	r.mu.Unlock()

	// Activation may block on the network; the lock is not held so a
	// timer can still navigate away meanwhile.
	if err := view.Activate(r.ctx, route); err != nil {
		r.log.Error("view activation failed",
			slog.String("route", route.Path),
			slog.String("error", err.Error()))
	}

	if onChange != nil && r.isCurrent(view) {
		onChange(route, view)
	}
}

// Current returns the active route and view.
func (r *Router) Current() (Route, View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route, r.view
}

// Close deactivates the current view.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.view != nil {
		r.view.Deactivate()
		r.view = nil
	}
}

func (r *Router) isCurrent(v View) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view == v
}
