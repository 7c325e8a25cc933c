package client

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	minTimeout     = 100 * time.Millisecond
	maxTimeout     = 5 * time.Minute
)

type Option func(*Options)

type Options struct {
	timeout        time.Duration
	requestLogger  RequestLogger
	requestHeaders map[string]string
	tokenProvider  TokenProvider
	transport      Transport
	endpoints      Endpoints
}

func newClientOptions() *Options {
	return &Options{
		timeout:       defaultTimeout,
		requestLogger: &NoopLogger{},
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		endpoints: DefaultEndpoints(),
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout >= minTimeout {
			o.timeout = timeout
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithRequestHeader adds a header sent with every request. Content-Type,
// Accept and Authorization cannot be overridden.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || isProtectedHeader(header) {
			return
		}

		o.requestHeaders[header] = value
	}
}

// WithTokenProvider sets where the access token of auth-required requests
// comes from. Without one, such requests need an explicit token or fail.
func WithTokenProvider(provider TokenProvider) Option {
	return func(o *Options) {
		if provider != nil {
			o.tokenProvider = provider
		}
	}
}

// WithTransport replaces the default resty-based transport. The base URL,
// timeout and request headers only apply to the default transport.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		if transport != nil {
			o.transport = transport
		}
	}
}

// WithEndpoints overrides endpoint paths. Empty fields keep their default.
func WithEndpoints(endpoints Endpoints) Option {
	return func(o *Options) {
		o.endpoints = o.endpoints.merge(endpoints)
	}
}

func isProtectedHeader(header string) bool {
	return strings.EqualFold(header, "Content-Type") ||
		strings.EqualFold(header, "Accept") ||
		strings.EqualFold(header, headerAuthorization)
}

func (o *Options) Validate() error {
	if o.timeout < minTimeout {
		return fmt.Errorf("timeout must be at least %v", minTimeout)
	}

	if o.timeout > maxTimeout {
		return fmt.Errorf("timeout must not exceed %v", maxTimeout)
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	if err := o.endpoints.validate(); err != nil {
		return fmt.Errorf("invalid endpoints: %w", err)
	}

	return nil
}
