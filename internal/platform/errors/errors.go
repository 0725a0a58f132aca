// Package errors is the project error type: a code that decides the HTTP
// status and wire name, a message, and optional field and op tags.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error. Values are append only
type ErrorCode uint16

const (
	ErrorCodeUnknown           ErrorCode = iota
	ErrorCodePanic                       // recovered panic
	ErrorCodeUnavailable                 // retry may succeed
	ErrorCodeConflict                    // duplicate write
	ErrorCodeInvalidArgument             // well formed but unusable input
	ErrorCodeValidation                  // request body failed validation
	ErrorCodeJSON                        // request body is not the expected JSON
	ErrorCodeNotFound
	ErrorCodeDB                          // unclassified database failure
	ErrorCodeMissingCredential           // the selected llm provider has no api key
	ErrorCodeTransport                   // could not reach the llm endpoint
	ErrorCodeUpstreamHTTP                // llm endpoint answered non 2xx
	ErrorCodeProtocol                    // llm envelope lacks the expected fields
	ErrorCodeExtraction                  // model output holds no parseable JSON
	ErrorCodeNotAnArray                  // model output JSON is not an array
)

var codes = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:           {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:             {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:       {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeConflict:          {"conflict", http.StatusConflict},
	ErrorCodeInvalidArgument:   {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:        {"validation", http.StatusBadRequest},
	ErrorCodeJSON:              {"json", http.StatusBadRequest},
	ErrorCodeNotFound:          {"not_found", http.StatusNotFound},
	ErrorCodeDB:                {"db", http.StatusInternalServerError},
	ErrorCodeMissingCredential: {"missing_credential", http.StatusServiceUnavailable},
	ErrorCodeTransport:         {"transport_error", http.StatusBadGateway},
	ErrorCodeUpstreamHTTP:      {"http_error", http.StatusBadGateway},
	ErrorCodeProtocol:          {"protocol_error", http.StatusBadGateway},
	ErrorCodeExtraction:        {"extraction_failure", http.StatusBadGateway},
	ErrorCodeNotAnArray:        {"not_an_array", http.StatusBadGateway},
}

// String returns the snake_case wire name
func (c ErrorCode) String() string {
	if int(c) < len(codes) {
		return codes[c].name
	}
	return fmt.Sprintf("code_%d", uint16(c))
}

// MarshalText puts the wire name in JSON
func (c ErrorCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText reads a wire name; names it does not know become ErrorCodeUnknown
func (c *ErrorCode) UnmarshalText(b []byte) error {
	*c = ErrorCodeUnknown
	for i, info := range codes {
		if info.name == string(b) {
			*c = ErrorCode(i)
		}
	}
	return nil
}

// HTTPStatusCode maps a code to its response status; unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if int(c) < len(codes) {
		return codes[c].status
	}
	return http.StatusInternalServerError
}

// Error carries a code, a developer facing message and the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the error as the API reports it
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending request field, if any
func (e *Error) Field() string { return e.field }

// Op names the operation that failed, if set
func (e *Error) Op() string { return e.op }

// WireFrom renders any error for the API. Foreign errors keep their text
// under ErrorCodeUnknown; nil gives the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code, or ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// with copies the outermost *Error in err and applies fn to the copy.
// Foreign errors come back unchanged
func with(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// WithField tags err with the request field it concerns
func WithField(err error, field string) error { return with(err, func(e *Error) { e.field = field }) }

// WithOp tags err with the operation that failed
func WithOp(err error, op string) error { return with(err, func(e *Error) { e.op = op }) }

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format string
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap returns an *Error with code and msg around orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with a format string
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

func NotFoundf(format string, a ...any) error    { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error  { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error    { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
