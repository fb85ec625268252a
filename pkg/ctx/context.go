// Package ctx provides a request context for handlers:
//
//	router.Put("/edit_helmet/{id}", "helmet.edit", ctx.Wrap(func(c *ctx.Context) {
//	    id, err := c.ParamUint("id")
//	    ...
//	    c.Success(msg)
//	}))
package ctx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/helmet-store/pkg/bind"
	"github.com/shashiranjanraj/helmet-store/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a path parameter as a positive integer id.
func (c *Context) ParamUint(key string) (uint, error) {
	raw := c.Param(key)
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("the %s parameter must be a positive integer, got %q", key, raw)
	}
	return uint(n), nil
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// BindJSON strictly decodes the request body into dest. It writes nothing;
// the caller decides how to report a *bind.DecodeError.
func (c *Context) BindJSON(dest any) error {
	return bind.JSON(c.W, c.R, dest)
}

// StatusCode returns the status written so far, or 0.
func (c *Context) StatusCode() int { return c.status }

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// Success sends a 200 with v as the body.
func (c *Context) Success(v any) {
	c.JSON(http.StatusOK, v)
}

// BadRequest sends a 400 envelope.
func (c *Context) BadRequest(message string, errs map[string]string) {
	c.status = http.StatusBadRequest
	response.BadRequest(c.W, message, errs)
}

// NotFound sends a 404 envelope.
func (c *Context) NotFound(message string) {
	c.status = http.StatusNotFound
	response.NotFound(c.W, message)
}

// InternalError sends a 500 envelope.
func (c *Context) InternalError() {
	c.status = http.StatusInternalServerError
	response.InternalError(c.W)
}
