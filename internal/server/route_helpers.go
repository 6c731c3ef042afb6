package server

import (
	"net/http"
	"strings"
)

// RouteHandler is a function type for HTTP handlers.
type RouteHandler func(http.ResponseWriter, *http.Request)

// MethodRouter maps HTTP methods to handlers.
type MethodRouter map[string]RouteHandler

// RouteByMethod dispatches on r.Method, answering 405 with an Allow header
// for methods that have no handler.
func RouteByMethod(w http.ResponseWriter, r *http.Request, routes MethodRouter) {
	handler, ok := routes[r.Method]
	if !ok {
		w.Header().Set("Allow", routes.allowed())
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handler(w, r)
}

// PostOnly routes POST to h and rejects everything else.
func PostOnly(h RouteHandler) http.HandlerFunc {
	routes := MethodRouter{http.MethodPost: h}
	return func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, routes)
	}
}

// allowed lists the routed methods in a stable order.
func (m MethodRouter) allowed() string {
	methods := make([]string, 0, len(m))
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete} {
		if _, ok := m[method]; ok {
			methods = append(methods, method)
		}
	}
	return strings.Join(methods, ", ")
}
