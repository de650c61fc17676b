package caching

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Engine interface {
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Fetch returns nil without error on a miss.
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Cacher stores JSON values deflate-compressed in an Engine.
type Cacher struct {
	engine Engine
}

func New(engine Engine) *Cacher {
	return &Cacher{engine: engine}
}

func NewRedisCache(redisClient *redis.Client) *Cacher {
	return New(&redisCache{redis: redisClient})
}

func Compress(uncompressed []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := flate.NewWriter(&buffer, flate.BestSpeed)
	if err != nil {
		return nil, err
	}

	if _, err = writer.Write(uncompressed); err != nil {
		return nil, err
	}

	if err = writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func Decompress(compressed []byte) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(compressed))
	defer reader.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(reader); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func (c *Cacher) Store(ctx context.Context, key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	compressed, err := Compress(encoded)
	if err != nil {
		return err
	}

	return c.engine.Store(ctx, key, compressed, ttl)
}

// Fetch decodes the cached value into destination and reports whether there was a hit.
func (c *Cacher) Fetch(ctx context.Context, key string, destination any) (bool, error) {
	value, err := c.engine.Fetch(ctx, key)
	if err != nil {
		return false, err
	}

	if value == nil {
		return false, nil
	}

	uncompressed, err := Decompress(value)
	if err != nil {
		return false, err
	}

	if err = json.Unmarshal(uncompressed, destination); err != nil {
		return false, err
	}

	return true, nil
}
