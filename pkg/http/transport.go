package http

import (
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type payloadContextKey struct{}

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	if t.token != "" {
		reqCopy.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sets a bearer token on every outgoing request.
func WithAuthToken(token string) Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{token: token, transport: rt}
	})
}

type headerTransport struct {
	key       string
	value     string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	if t.value != "" {
		reqCopy.Header.Set(t.key, t.value)
	}
	return t.transport.RoundTrip(reqCopy)
}

// WithStaticHeader sets a fixed header on every outgoing request, for
// services that authenticate with a custom header instead of a bearer
// token.
func WithStaticHeader(key, value string) Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{key: key, value: value, transport: rt}
	})
}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	}

	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.Int("payload_bytes", len(payload)))
	}

	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	return t.transport.RoundTrip(req)
}

// WithRequestLogging logs method, URL and payload size of every
// outgoing request at debug level.
func WithRequestLogging() Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{transport: rt}
	})
}
