package hunit

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://services.hunit.com.br/api/"

type OptionFunc func(o *options)

type options struct {
	// BaseURL - full URL to the api, operation paths are appended to it
	baseURL string

	// Timeout - zero keeps the transport defaults
	timeout time.Duration

	transport http.RoundTripper

	logger *zerolog.Logger
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithTransport(transport http.RoundTripper) OptionFunc {
	return func(o *options) {
		o.transport = transport
	}
}

func WithLogger(logger *zerolog.Logger) OptionFunc {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(optionFuncs ...OptionFunc) *options {
	nop := zerolog.Nop()

	o := &options{
		baseURL:   DefaultBaseURL,
		transport: http.DefaultTransport,
		logger:    &nop,
	}

	for _, optionFunc := range optionFuncs {
		optionFunc(o)
	}

	if o.baseURL == "" {
		o.baseURL = DefaultBaseURL
	}

	o.baseURL = strings.TrimSuffix(o.baseURL, "/") + "/"

	return o
}
