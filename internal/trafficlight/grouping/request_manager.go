package grouping

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/caching"
	"bitbucket.org/crgw/hunit-hub/internal/tools/converting"
	"bitbucket.org/crgw/hunit-hub/internal/tools/slowlog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	failedResponseTTL = time.Minute
	waitInterval      = 400 * time.Millisecond
)

type Response struct {
	Code    int
	Headers map[string][]string
	Body    string
}

type Storage interface {
	AcquireLock(ctx context.Context, cacheKey string) (bool, error)
	ReleaseLock(ctx context.Context, cacheKey string)
	StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration)
	FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error)
}

type requestManager struct {
	groupingId string
	cache      Storage
	log        *zerolog.Logger
	slowLog    slowlog.Logger
	cacheKey   string
	ttl        time.Duration
}

type catalogResponseObject struct {
	Errors *schema.ResponseErrors `json:"errors"`
}

func isStatusCodeAcceptable(code int) bool {
	return code >= 200 && code < 300
}

// responseTTL keeps failed answers for a short time only.
func (m *requestManager) responseTTL(response *Response) time.Duration {
	var catalogResponse catalogResponseObject
	err := json.Unmarshal([]byte(response.Body), &catalogResponse)

	if err != nil || !isStatusCodeAcceptable(response.Code) || len(converting.Unwrap(catalogResponse.Errors)) != 0 {
		if m.ttl < failedResponseTTL {
			return m.ttl
		}
		return failedResponseTTL
	}

	return m.ttl
}

func (m *requestManager) requestSupplierAndStore(
	responseKey string,
	requester func() (*Response, error),
) (*Response, error) {
	defer slowlog.Track(m.slowLog, "grouping:requestSupplierAndStore")()

	response, err := requester()

	if err != nil {
		m.cache.ReleaseLock(context.Background(), m.cacheKey)
		m.log.Err(err).Msg("Unable to request supplier")
		return nil, err
	}

	m.cache.StoreResponse(context.Background(), responseKey, &Response{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	}, m.responseTTL(response))

	m.cache.ReleaseLock(context.Background(), m.cacheKey)

	return response, nil
}

func (m *requestManager) requestOrWait(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	responseKey := "res:" + m.cacheKey

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m.slowLog.Start("grouping:fetchFromCache")
		response, err := m.cache.FetchResponse(ctx, responseKey)
		m.slowLog.Stop("grouping:fetchFromCache")

		if err != nil {
			m.log.Err(err).
				Str("label", "cache").
				Bool("hit", false).
				Str("key", responseKey).
				Msg("Error fetching from cache")

			return requester()
		}

		if response != nil {
			m.log.Info().
				Str("label", "cache").
				Bool("hit", true).
				Str("key", m.cacheKey).
				Msg("Used cache response")

			headers := response.Headers
			if headers == nil {
				headers = make(map[string][]string)
			}

			headers[HitHeader] = []string{"hit"}

			return &Response{
				Code:    response.Code,
				Body:    response.Body,
				Headers: headers,
			}, nil
		}

		canMakeTheRequest, err := m.cache.AcquireLock(ctx, m.cacheKey)

		if err != nil || canMakeTheRequest {
			return m.requestSupplierAndStore(responseKey, requester)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitInterval):
		}
	}
}

func (m *requestManager) HandleRequest(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	defer slowlog.Track(m.slowLog, "grouping:HandleRequest")()
	return m.requestOrWait(ctx, requester)
}

func NewRequestManager(
	redis *redis.Client,
	log *zerolog.Logger,
	cacheKey string,
	ttl time.Duration,
) RequestManager {
	groupingId := uuid.New().String()
	logWithGroupingId := log.With().Str("groupingId", groupingId).Logger()
	slowLog := slowlog.CreateLogger(&logWithGroupingId)

	return &requestManager{
		groupingId: groupingId,
		cacheKey:   cacheKey,
		ttl:        ttl,
		cache: &storage{
			redis:   redis,
			cache:   caching.NewRedisCache(redis),
			log:     &logWithGroupingId,
			slowLog: slowLog,
		},
		log:     &logWithGroupingId,
		slowLog: slowLog,
	}
}
