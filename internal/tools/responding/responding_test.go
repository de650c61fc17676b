package responding_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("should abort with message and error", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := zerolog.New(out)

		router := gin.New()
		router.GET("/fail", func(c *gin.Context) {
			c.Set("logger", &log)
			responding.HandleError(c, http.StatusBadRequest, "Failed to bind request params", errors.New("missing updates"))
		}, func(c *gin.Context) {
			assert.Fail(t, "should not reach next handler")
		})

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/fail", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.JSONEq(t, `{"message":"Failed to bind request params","error":"missing updates"}`, response.Body.String())
		assert.Contains(t, out.String(), `"error":"missing updates"`)
		assert.Contains(t, out.String(), `"code":400`)
	})

	t.Run("should work without logger or error", func(t *testing.T) {
		router := gin.New()
		router.GET("/fail", func(c *gin.Context) {
			responding.HandleError(c, http.StatusInternalServerError, "Unknown error", nil)
		})

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/fail", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusInternalServerError, response.Code)
		assert.JSONEq(t, `{"message":"Unknown error"}`, response.Body.String())
	})
}
