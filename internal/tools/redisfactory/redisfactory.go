package redisfactory

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// If the catalog cache needs its own database per concern, a new client should be introduced here.

type Factory struct {
	catalogCache *redis.Client
}

// New connects the catalog cache. An empty URI leaves it disabled, a malformed one panics.
func New(catalogURI string) *Factory {
	factory := &Factory{}
	if catalogURI == "" {
		return factory
	}

	opt, err := redis.ParseURL(catalogURI)
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	factory.catalogCache = redis.NewClient(opt)

	return factory
}

// CatalogClient is nil when no catalog cache is configured.
func (f *Factory) CatalogClient() *redis.Client {
	return f.catalogCache
}

func (f *Factory) Close() error {
	if f.catalogCache == nil {
		return nil
	}

	return f.catalogCache.Close()
}
