// Package http holds the chi server, the router seam and the response envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
	pnet "adscope/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return-style handlers produce. A Body holding an error
// decides its own status
type Response struct {
	Status int
	Body   any
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error maps err to its status and envelope when written
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).Write(w, r)
	}
}

// Write renders the envelope, stamping the request id from the context
func (resp Response) Write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	env := Envelope{RequestID: pnet.RequestID(r.Context())}

	if err, ok := resp.Body.(error); ok && err != nil {
		env.StatusCode = perr.HTTPStatus(err)
		wr := perr.WireFrom(err)
		env.Code, env.Error = wr.Code, wr.Message
		if env.StatusCode >= stdhttp.StatusInternalServerError {
			logger.C(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Int("status", env.StatusCode).Msg("request failed")
		}
	} else {
		env.StatusCode = resp.Status
		if env.StatusCode == 0 {
			env.StatusCode = stdhttp.StatusOK
		}
		env.Data = resp.Body
	}
	env.Status = stdhttp.StatusText(env.StatusCode)
	writeJSON(w, env.StatusCode, env)
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
