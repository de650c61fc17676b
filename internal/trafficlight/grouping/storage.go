package grouping

import (
	"context"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/tools/caching"
	"bitbucket.org/crgw/hunit-hub/internal/tools/slowlog"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const lockTTL = time.Minute

type CachedValue struct {
	Code    int                 `json:"code"`
	Headers map[string][]string `json:"headers"`
	Body    string              `json:"body"`
}

type storage struct {
	redis   *redis.Client
	cache   *caching.Cacher
	log     *zerolog.Logger
	slowLog slowlog.Logger
}

func (s *storage) AcquireLock(ctx context.Context, cacheKey string) (bool, error) {
	return s.redis.SetNX(ctx, cacheKey, "", lockTTL).Result()
}

func (s *storage) ReleaseLock(ctx context.Context, cacheKey string) {
	s.redis.Del(ctx, cacheKey)
}

func (s *storage) StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
	defer slowlog.Track(s.slowLog, "grouping:store")()

	err := s.cache.Store(ctx, responseKey, CachedValue{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	}, duration)

	if err != nil {
		s.log.Err(err).Str("key", responseKey).Msg("Unable to store the response")
	}
}

func (s *storage) FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error) {
	defer slowlog.Track(s.slowLog, "grouping:fetch")()

	var value CachedValue
	hit, err := s.cache.Fetch(ctx, responseKey, &value)
	if err != nil {
		return nil, err
	}

	if !hit {
		return nil, nil
	}

	return &value, nil
}
