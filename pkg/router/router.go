// Package router wraps chi with route groups, per-group middleware and a
// route table that the route:list command can print.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Route is one registered route, kept for introspection.
type Route struct {
	Method  string
	Pattern string
}

// Router is the top-level HTTP router.
type Router struct {
	mux    chi.Router
	routes []Route
}

// New creates an empty Router.
func New() *Router {
	return &Router{mux: chi.NewRouter()}
}

// Use appends middleware that runs for every route.
func (r *Router) Use(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Routes returns every registered route in registration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *Router) record(method, pattern string) {
	r.routes = append(r.routes, Route{Method: method, Pattern: pattern})
}

func (r *Router) Get(pattern string, h http.HandlerFunc) {
	r.record(http.MethodGet, pattern)
	r.mux.Get(pattern, h)
}

func (r *Router) Post(pattern string, h http.HandlerFunc) {
	r.record(http.MethodPost, pattern)
	r.mux.Post(pattern, h)
}

func (r *Router) Put(pattern string, h http.HandlerFunc) {
	r.record(http.MethodPut, pattern)
	r.mux.Put(pattern, h)
}

func (r *Router) Patch(pattern string, h http.HandlerFunc) {
	r.record(http.MethodPatch, pattern)
	r.mux.Patch(pattern, h)
}

func (r *Router) Delete(pattern string, h http.HandlerFunc) {
	r.record(http.MethodDelete, pattern)
	r.mux.Delete(pattern, h)
}

// HandleFunc registers h for every HTTP method on pattern.
func (r *Router) HandleFunc(pattern string, h http.HandlerFunc) {
	r.record("*", pattern)
	r.mux.HandleFunc(pattern, h)
}

// Group registers routes under prefix. Middleware passed here applies only
// to routes registered inside fn.
func (r *Router) Group(prefix string, fn func(g *Group), mw ...func(http.Handler) http.Handler) {
	r.mux.Route(prefix, func(sub chi.Router) {
		sub.Use(mw...)
		fn(&Group{mux: sub, prefix: prefix, parent: r})
	})
}

// Group registers routes under a shared prefix with shared middleware.
type Group struct {
	mux    chi.Router
	prefix string
	parent *Router
}

// Group nests a further sub-group under this one. An empty prefix adds
// middleware scope without changing the path (login and register stay
// public while their siblings require auth).
func (g *Group) Group(prefix string, fn func(sub *Group), mw ...func(http.Handler) http.Handler) {
	if prefix == "" {
		g.mux.Group(func(sub chi.Router) {
			sub.Use(mw...)
			fn(&Group{mux: sub, prefix: g.prefix, parent: g.parent})
		})
		return
	}
	g.mux.Route(prefix, func(sub chi.Router) {
		sub.Use(mw...)
		fn(&Group{mux: sub, prefix: g.prefix + prefix, parent: g.parent})
	})
}

func (g *Group) record(method, pattern string) {
	g.parent.record(method, g.prefix+pattern)
}

func (g *Group) Get(pattern string, h http.HandlerFunc) {
	g.record(http.MethodGet, pattern)
	g.mux.Get(orSlash(pattern), h)
}

func (g *Group) Post(pattern string, h http.HandlerFunc) {
	g.record(http.MethodPost, pattern)
	g.mux.Post(orSlash(pattern), h)
}

func (g *Group) Put(pattern string, h http.HandlerFunc) {
	g.record(http.MethodPut, pattern)
	g.mux.Put(orSlash(pattern), h)
}

func (g *Group) Patch(pattern string, h http.HandlerFunc) {
	g.record(http.MethodPatch, pattern)
	g.mux.Patch(orSlash(pattern), h)
}

func (g *Group) Delete(pattern string, h http.HandlerFunc) {
	g.record(http.MethodDelete, pattern)
	g.mux.Delete(orSlash(pattern), h)
}

// URLParam extracts a path parameter ({id}, {name}, ...) from the request.
func URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// chi rejects empty patterns; "" means the group root.
func orSlash(pattern string) string {
	if pattern == "" {
		return "/"
	}
	return pattern
}
