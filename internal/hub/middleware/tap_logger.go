package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TapLogger(c *gin.Context) {
	logger := c.MustGet("logger").(*zerolog.Logger)

	logContext := logger.
		With().
		Str("operationId", uuid.New().String())

	if hotelID := c.Params.ByName(HotelParam); hotelID != "" {
		logContext = logContext.Str("hotelId", hotelID)
	}

	requestLogger := logContext.Logger()

	c.Set("logger", &requestLogger)
}
