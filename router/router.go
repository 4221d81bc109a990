package router

import "net/http"

// Router is the minimal routing surface the application needs. The concrete
// implementation lives in router/httprouter.
type Router interface {
	http.Handler

	// Handle registers a handler for an explicit method and path.
	Handle(method, path string, handler http.Handler)

	// Static serves a filesystem subtree under the given prefix. The path
	// must end with the implementation's catch-all suffix convention.
	Static(path string, root http.FileSystem)

	// Param returns the value of a named path parameter of the request.
	Param(r *http.Request, name string) string
}
