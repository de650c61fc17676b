package responding

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HandleError logs the failure on the request logger and aborts with a JSON body.
func HandleError(c *gin.Context, code int, message string, err error) {
	if logger, ok := c.Get("logger"); ok {
		if log, ok := logger.(*zerolog.Logger); ok {
			event := log.Error().Int("code", code)
			if err != nil {
				event = event.Err(err)
			}
			event.Msg(message)
		}
	}

	response := ErrorResponse{Message: message}
	if err != nil {
		response.Error = err.Error()
	}

	c.AbortWithStatusJSON(code, response)
}
