package caching_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/tools/caching"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type portal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func compressed(t *testing.T, value any) []byte {
	encoded, err := json.Marshal(value)
	require.NoError(t, err)

	result, err := caching.Compress(encoded)
	require.NoError(t, err)

	return result
}

func TestCompression(t *testing.T) {
	original := []byte(`{"id":"2","name":"Booking.com"}`)

	packed, err := caching.Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, packed)

	unpacked, err := caching.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, original, unpacked)

	_, err = caching.Decompress([]byte("not deflate"))
	assert.Error(t, err)
}

func TestRedisCache(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	cache := caching.NewRedisCache(redisClient)

	value := []portal{{ID: "2", Name: "Booking.com"}}

	t.Run("should store compressed json", func(t *testing.T) {
		redisMock.ExpectSetEx("hunit:portals", compressed(t, value), 5*time.Minute).SetVal("OK")

		err := cache.Store(context.Background(), "hunit:portals", value, 5*time.Minute)

		assert.NoError(t, err)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("should fetch a hit", func(t *testing.T) {
		redisMock.ExpectGet("hunit:portals").SetVal(string(compressed(t, value)))

		var destination []portal
		hit, err := cache.Fetch(context.Background(), "hunit:portals", &destination)

		assert.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, value, destination)
	})

	t.Run("should report a miss", func(t *testing.T) {
		redisMock.ExpectGet("hunit:portals").SetErr(redis.Nil)

		var destination []portal
		hit, err := cache.Fetch(context.Background(), "hunit:portals", &destination)

		assert.NoError(t, err)
		assert.False(t, hit)
		assert.Nil(t, destination)
	})

	t.Run("should return redis errors", func(t *testing.T) {
		redisMock.ExpectGet("hunit:portals").SetErr(assert.AnError)

		var destination []portal
		hit, err := cache.Fetch(context.Background(), "hunit:portals", &destination)

		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, hit)
	})

	t.Run("should fail on corrupted values", func(t *testing.T) {
		redisMock.ExpectGet("hunit:portals").SetVal("garbage")

		var destination []portal
		hit, err := cache.Fetch(context.Background(), "hunit:portals", &destination)

		assert.Error(t, err)
		assert.False(t, hit)
	})
}
