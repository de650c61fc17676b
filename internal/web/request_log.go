package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CurrentTimeFunc can be replaced in tests.
var CurrentTimeFunc = time.Now

func StartRequest(c *gin.Context) {
	c.Set("requestStartTime", CurrentTimeFunc())
}

// RegisterLogger stores a request scoped logger under "logger", tagged with the correlation id.
func RegisterLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger.
			With().
			Str("correlationId", c.GetString("correlationId")).
			Logger()

		c.Set("logger", &requestLogger)
	}
}

// TraceLog writes one line per request once every other handler has finished.
func TraceLog(c *gin.Context) {
	c.Next()

	logger := c.MustGet("logger").(*zerolog.Logger)
	startTime := c.GetTime("requestStartTime")

	event := logger.Info()
	if c.Writer.Status() >= 500 {
		event = logger.Error()
	}

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}

	event.
		Str("label", "trace").
		Str("method", c.Request.Method).
		Str("url", c.Request.URL.Path).
		Str("route", route).
		Int("code", c.Writer.Status()).
		Float64("duration", CurrentTimeFunc().Sub(startTime).Seconds()).
		Msg("")
}
