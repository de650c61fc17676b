package grouping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/slowlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type storageMock struct {
	Storage
	acquireLockMock   func(ctx context.Context, cacheKey string) (bool, error)
	releaseLockMock   func(ctx context.Context, cacheKey string)
	storeResponseMock func(ctx context.Context, responseKey string, response *Response, duration time.Duration)
	fetchResponseMock func(ctx context.Context, responseKey string) (*CachedValue, error)
}

func (s *storageMock) AcquireLock(ctx context.Context, cacheKey string) (bool, error) {
	return s.acquireLockMock(ctx, cacheKey)
}

func (s *storageMock) ReleaseLock(ctx context.Context, cacheKey string) {
	s.releaseLockMock(ctx, cacheKey)
}

func (s *storageMock) StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
	s.storeResponseMock(ctx, responseKey, response, duration)
}

func (s *storageMock) FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error) {
	return s.fetchResponseMock(ctx, responseKey)
}

func createManager(storage *storageMock) *requestManager {
	log := zerolog.New(&bytes.Buffer{})

	return &requestManager{
		cache:    storage,
		log:      &log,
		slowLog:  slowlog.CreateLogger(&log),
		cacheKey: "grouping:hunit:984:portals",
		ttl:      10 * time.Minute,
	}
}

func TestGroupingManager(t *testing.T) {
	validResponseBody, _ := json.Marshal(schema.Response{
		Data:   []string{"Booking.com"},
		Errors: &schema.ResponseErrors{},
	})

	requester := func() (*Response, error) {
		return &Response{
			Code: http.StatusOK,
			Body: string(validResponseBody),
			Headers: map[string][]string{
				"Content-Type": {"application/json"},
			},
		}, nil
	}

	cacheValue := "response body from cache"

	t.Run("should pass through the request if not in the cache and store it", func(t *testing.T) {
		stored := make(chan *Response, 1)

		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				assert.Equal(t, "res:grouping:hunit:984:portals", responseKey)
				return nil, nil
			},
			storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
				assert.Equal(t, 10*time.Minute, duration)
				stored <- response
			},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				return true, nil
			},
			releaseLockMock: func(ctx context.Context, cacheKey string) {},
		})

		response, err := groupingManager.HandleRequest(context.Background(), requester)

		assert.Equal(t, string(validResponseBody), (<-stored).Body)
		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, string(validResponseBody), response.Body)
		assert.Equal(t, map[string][]string{
			"Content-Type": {"application/json"},
		}, response.Headers)
	})

	t.Run("should get the response from cache", func(t *testing.T) {
		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				return &CachedValue{Code: http.StatusOK, Body: cacheValue}, nil
			},
		})

		response, err := groupingManager.HandleRequest(context.Background(), requester)

		assert.Nil(t, err)
		assert.Equal(t, cacheValue, response.Body)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, []string{"hit"}, response.Headers[HitHeader])
	})

	t.Run("should wait for another request to finish", func(t *testing.T) {
		responseChannel := make(chan string, 1)

		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				select {
				case cacheValue := <-responseChannel:
					return &CachedValue{Code: http.StatusOK, Body: cacheValue}, nil
				default:
					return nil, nil
				}
			},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				// the lock holder stores its response right after
				responseChannel <- cacheValue
				return false, nil
			},
		})

		response, err := groupingManager.HandleRequest(context.Background(), func() (*Response, error) {
			assert.Fail(t, "should not call the supplier")
			return nil, nil
		})

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, cacheValue, response.Body)
	})

	t.Run("should acquire the lock while waiting", func(t *testing.T) {
		acquireLockChannel := make(chan bool, 2)

		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				acquireLockChannel <- true
				return nil, nil
			},
			storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				return <-acquireLockChannel, nil
			},
			releaseLockMock: func(ctx context.Context, cacheKey string) {},
		})

		acquireLockChannel <- false
		response, err := groupingManager.HandleRequest(context.Background(), requester)

		assert.Nil(t, err)
		assert.Equal(t, string(validResponseBody), response.Body)
	})

	t.Run("should stop waiting when the context ends", func(t *testing.T) {
		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				return nil, nil
			},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				return false, nil
			},
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		response, err := groupingManager.HandleRequest(ctx, requester)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, response)
	})

	t.Run("should release the lock when done", func(t *testing.T) {
		releasedChannel := make(chan bool, 1)

		failedBody, _ := json.Marshal(schema.Response{
			Errors: &schema.ResponseErrors{schema.NewValidationError("101", "Invalid user name or password")},
		})

		tests := []struct {
			name             string
			requester        func() (*Response, error)
			expectedDuration time.Duration
			expectedResponse *Response
			expectedError    error
		}{
			{
				name: "requesting failed",
				requester: func() (*Response, error) {
					return nil, errors.New("dial tcp error")
				},
				expectedError: errors.New("dial tcp error"),
			},
			{
				name: "bad status",
				requester: func() (*Response, error) {
					return &Response{Code: http.StatusBadRequest, Body: "error"}, nil
				},
				expectedDuration: time.Minute,
				expectedResponse: &Response{Code: http.StatusBadRequest, Body: "error"},
			},
			{
				name: "supplier errors",
				requester: func() (*Response, error) {
					return &Response{Code: http.StatusOK, Body: string(failedBody)}, nil
				},
				expectedDuration: time.Minute,
				expectedResponse: &Response{Code: http.StatusOK, Body: string(failedBody)},
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				manager := createManager(&storageMock{
					fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
						return nil, nil
					},
					acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
						return true, nil
					},
					storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
						if test.expectedError != nil {
							t.Errorf("should not store a failed request")
						}
						assert.Equal(t, test.expectedDuration, duration)
					},
					releaseLockMock: func(ctx context.Context, cacheKey string) {
						releasedChannel <- true
					},
				})

				response, err := manager.HandleRequest(context.Background(), test.requester)

				assert.True(t, <-releasedChannel)
				assert.Equal(t, test.expectedError, err)
				assert.Equal(t, test.expectedResponse, response)
			})
		}
	})

	t.Run("should keep short ttls for failures", func(t *testing.T) {
		manager := createManager(&storageMock{})
		manager.ttl = 30 * time.Second

		assert.Equal(t, 30*time.Second, manager.responseTTL(&Response{Code: http.StatusBadGateway}))
		assert.Equal(t, 30*time.Second, manager.responseTTL(&Response{Code: http.StatusOK, Body: string(validResponseBody)}))
	})

	t.Run("should pass through the request if redis is down", func(t *testing.T) {
		tests := []struct {
			name    string
			storage *storageMock
		}{
			{
				name: "fetch from cache fails",
				storage: &storageMock{
					fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
						return nil, errors.New("connection error")
					},
				},
			},
			{
				name: "acquire lock fails",
				storage: &storageMock{
					fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
						return nil, nil
					},
					acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
						return false, errors.New("connection error")
					},
					storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {},
					releaseLockMock:   func(ctx context.Context, cacheKey string) {},
				},
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				response, err := createManager(test.storage).HandleRequest(context.Background(), requester)

				assert.Nil(t, err)
				assert.Equal(t, http.StatusOK, response.Code)
				assert.Equal(t, string(validResponseBody), response.Body)
			})
		}
	})
}
