// Package httpkit is what modules register routes with. Handlers return
// (value, error) and httpkit wraps them in the platform envelope
package httpkit

import (
	"net/http"
	"strings"

	phttp "adscope/internal/platform/net/http"
	"adscope/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies; a batch carries several full transcripts
const maxBodyBytes = 16 << 20

// Router is the platform router seam
type Router = phttp.Router

// PostJSON binds and validates the body into T before calling h
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.Handle(func(req *http.Request) phttp.Response {
		in, err := bind.ParseJSON[T](req, bind.JSONOptions{MaxBytes: maxBodyBytes, DisallowUnknown: true})
		if err != nil {
			return phttp.Error(err)
		}
		return wrap(h(req, in))
	}))
}

// Get registers a body-less handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) phttp.Response {
		return wrap(h(req))
	}))
}

func wrap(out any, err error) phttp.Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(phttp.Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// Param returns a trimmed path parameter captured by the router
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// MountAPIV1 scopes mount under /api/v1 with mw applied to that scope only
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
