package requesting

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"github.com/rs/zerolog"
)

type TransportMiddleware func(http.RoundTripper) http.RoundTripper

type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

type LoggingTransportMiddleware struct {
	Transport http.RoundTripper
	log       *zerolog.Logger
}

func NewLoggingTransportMiddleware(log *zerolog.Logger) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &LoggingTransportMiddleware{
			log:       log,
			Transport: rt,
		}
	}
}

func (t *LoggingTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	log := t.log
	if ctxLogger := zerolog.Ctx(req.Context()); ctxLogger.GetLevel() != zerolog.Disabled {
		log = ctxLogger
	}

	message := log.Info().
		Str("label", "outgoing-request").
		Str("method", req.Method).
		Str("url", req.URL.String())

	if requestType, ok := req.Context().Value(schema.RequestingTypeKey).(schema.SupplierRequestName); ok {
		message.Str("operation", string(requestType))
	}

	defer func() {
		message.
			Float64("duration", time.Since(startTime).Seconds()).
			Msg("")
	}()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		message.Str("error", err.Error())
		return nil, err
	}

	message.Int("code", resp.StatusCode)

	return resp, nil
}

type RequestBucket interface {
	FinishedRequest(
		requestType schema.SupplierRequestName,
		startTime time.Time,
		statusCode int,
		method string,
		url string,
		requestBody string,
		requestHeaders http.Header,
		responseBody string,
		responseHeaders http.Header,
	)
}

type bucketKey struct{}

// WithBucket makes requests issued with the returned context record themselves into bucket.
func WithBucket(ctx context.Context, bucket RequestBucket) context.Context {
	return context.WithValue(ctx, bucketKey{}, bucket)
}

func bucketFromContext(ctx context.Context) RequestBucket {
	bucket, _ := ctx.Value(bucketKey{}).(RequestBucket)
	return bucket
}

type BucketTransportMiddleware struct {
	Transport http.RoundTripper
	Bucket    RequestBucket
}

// NewBucketTransportMiddleware records into bucket, or into the bucket carried by
// the request context when bucket is nil.
func NewBucketTransportMiddleware(bucket RequestBucket) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &BucketTransportMiddleware{
			Transport: rt,
			Bucket:    bucket,
		}
	}
}

func (b *BucketTransportMiddleware) RoundTrip(request *http.Request) (*http.Response, error) {
	bucket := b.Bucket
	if bucket == nil {
		bucket = bucketFromContext(request.Context())
	}

	if bucket == nil {
		return b.Transport.RoundTrip(request)
	}

	startTime := time.Now()

	requestType, _ := request.Context().Value(schema.RequestingTypeKey).(schema.SupplierRequestName)

	var requestBytes []byte
	if request.Body != nil {
		requestBytes, _ = io.ReadAll(request.Body)
		request.Body.Close()
		request.Body = io.NopCloser(bytes.NewBuffer(requestBytes))
	}

	status := 0
	resBody := ""
	resHeaders := make(http.Header)

	defer func() {
		bucket.FinishedRequest(
			requestType,
			startTime,
			status,
			request.Method,
			request.URL.String(),
			string(requestBytes),
			request.Header,
			resBody,
			resHeaders,
		)
	}()

	response, err := b.Transport.RoundTrip(request)
	if err != nil {
		return nil, err
	}

	responseBytes, err := io.ReadAll(response.Body)
	response.Body.Close()

	status = response.StatusCode
	resBody = string(responseBytes)
	resHeaders = response.Header

	// a body cut short is a transport failure, the partial body is only recorded
	if err != nil {
		return nil, err
	}

	response.Body = io.NopCloser(bytes.NewBuffer(responseBytes))

	return response, nil
}
