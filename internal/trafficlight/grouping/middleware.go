package grouping

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const HitHeader = "x-grouping-hit"

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type RequestManager interface {
	HandleRequest(context.Context, func() (*Response, error)) (*Response, error)
}

type MiddlewareOptions struct {
	CreateManager func(
		redis *redis.Client,
		log *zerolog.Logger,
		cacheKey string,
		ttl time.Duration,
	) RequestManager
	// Grouping is skipped when no client is configured
	RedisClient *redis.Client
	TTL         time.Duration
	// CacheKey identifies requests answered by the same upstream call
	CacheKey func(c *gin.Context) string
}

// Middleware lets concurrent identical requests share one call of the next handlers
// and replays the stored response until it expires.
func Middleware(o MiddlewareOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := c.MustGet("logger").(*zerolog.Logger)

		if o.RedisClient == nil {
			c.Next()
			return
		}

		cacheKey := o.CacheKey(c)
		if cacheKey == "" {
			log.Warn().Msg("Grouping added to route, but no cache key could be built")
			c.Next()
			return
		}

		groupingManager := o.CreateManager(o.RedisClient, log, cacheKey, o.TTL)

		requester := func() (*Response, error) {
			bodyWriter := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
			c.Writer = bodyWriter

			// expects the catalog handler to be called
			c.Next()

			return &Response{
				Code:    c.Writer.Status(),
				Body:    bodyWriter.body.String(),
				Headers: bodyWriter.Header().Clone(),
			}, nil
		}

		response, err := groupingManager.HandleRequest(c.Request.Context(), requester)

		if !c.Writer.Written() {
			if err != nil {
				responding.HandleError(
					c,
					http.StatusInternalServerError,
					"Error requesting catalog",
					err,
				)
				return
			}

			for key, values := range response.Headers {
				for _, value := range values {
					c.Writer.Header().Add(key, value)
				}
			}

			c.Data(response.Code, gin.MIMEJSON, []byte(response.Body))
		}

		c.Abort()
	}
}
