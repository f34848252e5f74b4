package http

import "net/http"

type headerAuthTransport struct {
	header    string
	value     string
	transport http.RoundTripper
}

func (t *headerAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.value != "" {
		reqCopy.Header.Set(t.header, t.value)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithBearerToken sends an Authorization: Bearer header on every request.
func WithBearerToken(token string) Option {
	return WithHeaderAuth("Authorization", "Bearer "+token)
}

// WithHeaderAuth sends a static header on every request. Qdrant, for
// example, authenticates with an "api-key" header.
func WithHeaderAuth(header, value string) Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerAuthTransport{
			header:    header,
			value:     value,
			transport: rt,
		}
	})
}
