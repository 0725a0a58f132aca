package errors

import (
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeMissingCredential, http.StatusServiceUnavailable},
		{ErrorCodeTransport, http.StatusBadGateway},
		{ErrorCodeUpstreamHTTP, http.StatusBadGateway},
		{ErrorCodeProtocol, http.StatusBadGateway},
		{ErrorCodeExtraction, http.StatusBadGateway},
		{ErrorCodeNotAnArray, http.StatusBadGateway},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	cases := map[ErrorCode]string{
		ErrorCodeMissingCredential: "missing_credential",
		ErrorCodeTransport:         "transport_error",
		ErrorCodeUpstreamHTTP:      "http_error",
		ErrorCodeProtocol:          "protocol_error",
		ErrorCodeNotAnArray:        "not_an_array",
		ErrorCode(4242):            "code_4242",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("String(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestErrorCodeJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Code ErrorCode `json:"code"`
	}{ErrorCodeExtraction})
	if err != nil || string(b) != `{"code":"extraction_failure"}` {
		t.Fatalf("marshal = %s, %v", b, err)
	}

	var back struct {
		Code ErrorCode `json:"code"`
	}
	if err := json.Unmarshal(b, &back); err != nil || back.Code != ErrorCodeExtraction {
		t.Fatalf("unmarshal = %v, %v", back.Code, err)
	}
	if err := json.Unmarshal([]byte(`{"code":"nonsense"}`), &back); err != nil || back.Code != ErrorCodeUnknown {
		t.Fatalf("unknown name = %v, %v", back.Code, err)
	}
}

func TestError(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("connection reset")
	tests := []struct {
		name string
		err  error
		code ErrorCode
		msg  string
	}{
		{"new", New(ErrorCodeValidation, "mode is required"), ErrorCodeValidation, "mode is required"},
		{"newf", Newf(ErrorCodeJSON, "byte %d", 12), ErrorCodeJSON, "byte 12"},
		{"wrap", Wrap(cause, ErrorCodeTransport, "post chat completion"), ErrorCodeTransport, "post chat completion: connection reset"},
		{"wrapf", Wrapf(cause, ErrorCodeUpstreamHTTP, "status %d", 502), ErrorCodeUpstreamHTTP, "status 502: connection reset"},
		{"wrapped by fmt", fmt.Errorf("video v1: %w", NotFoundf("result %s", "r1")), ErrorCodeNotFound, "video v1: result r1"},
		{"foreign", cause, ErrorCodeUnknown, "connection reset"},
		{"invalid arg", InvalidArgf("x"), ErrorCodeInvalidArgument, "x"},
		{"json", JSONErrf("x"), ErrorCodeJSON, "x"},
		{"panic", PanicErrf("x"), ErrorCodePanic, "x"},
		{"unavailable", Unavailablef("x"), ErrorCodeUnavailable, "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !IsCode(tc.err, tc.code) {
				t.Fatalf("code = %s, want %s", CodeOf(tc.err), tc.code)
			}
			if tc.err.Error() != tc.msg {
				t.Fatalf("Error() = %q, want %q", tc.err.Error(), tc.msg)
			}
			if HTTPStatus(tc.err) != HTTPStatusCode(tc.code) {
				t.Fatalf("HTTPStatus disagrees with code")
			}
		})
	}

	if u := stderrs.Unwrap(Wrap(cause, ErrorCodeDB, "insert")); u != cause {
		t.Fatalf("Unwrap = %v", u)
	}
}

func TestWithFieldAndOp_CopyOnWrite(t *testing.T) {
	base := Wrap(stderrs.New("x"), ErrorCodeInvalidArgument, "unknown intent")
	tagged := WithOp(WithField(base, "intent_ids"), "analysis.intents")

	e, ok := As(tagged)
	if !ok || e.Field() != "intent_ids" || e.Op() != "analysis.intents" || e.Code() != ErrorCodeInvalidArgument {
		t.Fatalf("tagged = %+v", e)
	}
	if orig, _ := As(base); orig.Field() != "" || orig.Op() != "" {
		t.Fatalf("original mutated: %+v", orig)
	}
	foreign := stderrs.New("plain")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("foreign error should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil -> %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign -> %+v", w)
	}
	err := WithField(Wrap(stderrs.New("hidden cause"), ErrorCodeValidation, "video_id must not be blank"), "video_id")
	want := Wire{Code: ErrorCodeValidation, Message: "video_id must not be blank", Field: "video_id"}
	if w := WireFrom(err); w != want {
		t.Fatalf("ours -> %+v", w)
	}
}
