package http

import (
	"net"
	"net/http"
	"time"
)

// TransportFunc wraps a RoundTripper with additional behaviour.
type TransportFunc func(http.RoundTripper) http.RoundTripper

type Option func(*clientConfig)

type clientConfig struct {
	requestTimeout        time.Duration
	connTimeout           time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	transports            []TransportFunc
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		requestTimeout:        30 * time.Second,
		connTimeout:           30 * time.Second,
		keepAlive:             90 * time.Second,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 10 * time.Second,
		idleConnTimeout:       90 * time.Second,
		maxIdleConns:          100,
		maxIdleConnsPerHost:   10,
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

func WithConnTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.connTimeout = d
		}
	}
}

func WithKeepAlive(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.keepAlive = d
		}
	}
}

func WithIdleConnTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.idleConnTimeout = d
		}
	}
}

func WithResponseHeaderTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.responseHeaderTimeout = d
		}
	}
}

// WithTransport appends a transport wrapper; wrappers are applied in
// order, the last one becoming the outermost.
func WithTransport(fn TransportFunc) Option {
	return func(c *clientConfig) {
		c.transports = append(c.transports, fn)
	}
}

func newClient(opts ...Option) *http.Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := net.Dialer{
		Timeout:   cfg.connTimeout,
		KeepAlive: cfg.keepAlive,
	}

	var rt http.RoundTripper = &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          cfg.maxIdleConns,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
	}

	for _, fn := range cfg.transports {
		rt = fn(rt)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: rt,
	}
}
