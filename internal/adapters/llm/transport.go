package llm

import "net/http"

// headerTransport stamps static headers on every outgoing request
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(r)
	}
	r2 := r.Clone(r.Context())
	for k, v := range t.headers {
		if v != "" {
			r2.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(r2)
}
