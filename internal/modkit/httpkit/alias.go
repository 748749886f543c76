// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "textclf/internal/platform/net/http"
	"textclf/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// JSONOptions tunes request body binding
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 response in the envelope
func OK(data any) Response { return phttp.OK(data) }

// Bare returns a 200 response written without the envelope
func Bare(v any) Response { return phttp.Bare(v) }

// Status returns a response with an explicit status
func Status(status int, data any) Response { return phttp.Status(status, data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON binds and validates T with the default options before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn)
}

// JSONWith is JSON with explicit binding options
func JSONWith[T any](opts JSONOptions, fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandlerWith(opts, fn)
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
