package requesting_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/requesting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(log *zerolog.Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &requesting.InterceptorTransport{
			Transport: http.DefaultTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(log),
				requesting.NewBucketTransportMiddleware(nil),
			},
		},
	}
}

func post(ctx context.Context, client *http.Client, url string, body string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	return client.Do(request)
}

func TestRequestErrors(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should pass successful responses", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("<portalRS/>"))
		}))
		defer testServer.Close()

		response, err := requesting.RequestErrors(post(context.Background(), newClient(&log, time.Second), testServer.URL, ""))

		require.NoError(t, err)
		body, _ := io.ReadAll(response.Body)
		assert.Equal(t, "<portalRS/>", string(body))
	})

	t.Run("should classify failures", func(t *testing.T) {
		slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(50 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer slowServer.Close()

		failingServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer failingServer.Close()

		closedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		closedServer.Close()

		tests := []struct {
			name               string
			url                string
			timeout            time.Duration
			expectedCode       schema.ErrorCode
			expectedStatusCode int
		}{
			{"timeout", slowServer.URL, time.Millisecond, schema.TimeoutError, 0},
			{"status code", failingServer.URL, time.Second, schema.SupplierError, http.StatusBadGateway},
			{"connection", closedServer.URL, time.Second, schema.ConnectionError, 0},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				response, err := requesting.RequestErrors(post(context.Background(), newClient(&log, test.timeout), test.url, ""))

				assert.Nil(t, response)

				var transportError *requesting.TransportError
				require.True(t, errors.As(err, &transportError))
				assert.Equal(t, test.expectedCode, transportError.Code)
				assert.Equal(t, test.expectedStatusCode, transportError.StatusCode)
				assert.NotNil(t, errors.Unwrap(err))
				assert.Equal(t, test.expectedCode, transportError.ResponseError().Code)
			})
		}
	})

	t.Run("should classify an expired context as timeout", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(50 * time.Millisecond)
		}))
		defer testServer.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		_, err := requesting.RequestErrors(post(ctx, newClient(&log, 0), testServer.URL, ""))

		var transportError *requesting.TransportError
		require.True(t, errors.As(err, &transportError))
		assert.Equal(t, schema.TimeoutError, transportError.Code)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestTransports(t *testing.T) {
	t.Setenv("TEST", "true")

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "<portalRQ><password>secret</password></portalRQ>", string(body))

		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<portalRS/>"))
	}))
	defer testServer.Close()

	t.Run("should record requests into the context bucket", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := zerolog.New(out)
		bucket := schema.NewSupplierRequestsBucket()

		ctx := requesting.WithBucket(context.Background(), &bucket)
		ctx = context.WithValue(ctx, schema.RequestingTypeKey, schema.PortalRead)

		response, err := requesting.RequestErrors(post(ctx, newClient(&log, time.Second), testServer.URL, "<portalRQ><password>secret</password></portalRQ>"))
		require.NoError(t, err)

		body, _ := io.ReadAll(response.Body)
		assert.Equal(t, "<portalRS/>", string(body))

		requests := *bucket.SupplierRequests()
		require.Len(t, requests, 1)
		assert.Equal(t, schema.PortalRead, requests[0].Name)
		assert.Equal(t, "<portalRQ><password>***</password></portalRQ>", requests[0].RequestContent.Body)
		assert.Equal(t, http.MethodPost, requests[0].RequestContent.Method)
		assert.Equal(t, 200, requests[0].ResponseContent.StatusCode)
		assert.Equal(t, "<portalRS/>", requests[0].ResponseContent.Body)
		assert.Nil(t, requests[0].Duration)

		assert.Contains(t, out.String(), `"label":"outgoing-request"`)
		assert.Contains(t, out.String(), `"operation":"PortalRead"`)
		assert.Contains(t, out.String(), `"code":200`)
	})

	t.Run("should skip recording without a bucket", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := zerolog.New(out)

		_, err := requesting.RequestErrors(post(context.Background(), newClient(&log, time.Second), testServer.URL, "<portalRQ><password>secret</password></portalRQ>"))

		assert.NoError(t, err)
		assert.Contains(t, out.String(), `"method":"POST"`)
	})

	t.Run("should prefer the logger carried by the context", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := zerolog.New(out)

		ctxOut := &bytes.Buffer{}
		ctxLog := zerolog.New(ctxOut).With().Str("correlationId", "abc").Logger()

		ctx := ctxLog.WithContext(context.Background())

		_, err := requesting.RequestErrors(post(ctx, newClient(&log, time.Second), testServer.URL, "<portalRQ><password>secret</password></portalRQ>"))

		assert.NoError(t, err)
		assert.Empty(t, out.String())
		assert.Contains(t, ctxOut.String(), `"correlationId":"abc"`)
	})
}
