package httprouter

import (
	"net/http"

	jshttprouter "github.com/julienschmidt/httprouter"

	"github.com/caasmo/tablebook/router"
)

// Router implements router.Router backed by julienschmidt/httprouter.
type Router struct {
	rt *jshttprouter.Router
}

func New() *Router {
	// Handler registration goes through Router.Handler, which puts path
	// parameters in the request context so handlers keep the plain
	// http.Handler signature.
	return &Router{rt: jshttprouter.New()}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(method, path string, handler http.Handler) {
	r.rt.Handler(method, path, handler)
}

func (r *Router) Static(path string, root http.FileSystem) {
	r.rt.ServeFiles(path, root)
}

func (r *Router) Param(req *http.Request, name string) string {
	params := jshttprouter.ParamsFromContext(req.Context())
	return params.ByName(name)
}

var _ router.Router = (*Router)(nil)
