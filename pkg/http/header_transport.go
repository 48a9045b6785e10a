package http

import "net/http"

// headerTransport sets fixed headers on every outgoing request.
type headerTransport struct {
	headers   map[string]string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	for key, value := range t.headers {
		reqCopy.Header.Set(key, value)
	}

	return t.transport.RoundTrip(reqCopy)
}

func withHeaders(headers map[string]string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			headers:   headers,
			transport: rt,
		}
	})
}

// WithAuthToken sends a bearer token. An empty token adds nothing.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*httpConfig) {}
	}
	return withHeaders(map[string]string{"Authorization": "Bearer " + token})
}

func WithUserAgent(userAgent string) HttpOpts {
	return withHeaders(map[string]string{"User-Agent": userAgent})
}
