package web

import (
	"net/http"
	"os"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/config"
	"bitbucket.org/crgw/hunit-hub/internal/hub"
	"bitbucket.org/crgw/hunit-hub/internal/hub/factory"
	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/redisfactory"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRouter(
	log *zerolog.Logger,
	cfg *config.Config,
	f *factory.Factory,
	redisFactory *redisfactory.Factory,
) *gin.Engine {
	startTime := time.Now()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery)

	openApiContent, err := os.ReadFile(cfg.OpenAPILocation)
	if err != nil {
		log.Warn().Err(err).Msg("Api description not found, requests are not validated")
	} else if doc, err := LoadOpenapi(cfg.OpenAPILocation); err != nil {
		log.Error().Err(err).Msg("Api description rejected, requests are not validated")
	} else if validator, err := OpenapiValidator(doc); err != nil {
		log.Error().Err(err).Msg("Unable to route the api description, requests are not validated")
	} else {
		router.Use(validator)
	}

	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, schema.StatusResponse{
			Uptime: time.Since(startTime).Seconds(),
		})
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		if openApiContent == nil {
			c.Status(http.StatusNotFound)
			return
		}

		c.Data(http.StatusOK, gin.MIMEJSON, openApiContent)
	})

	pprof.Register(router)

	hub.RegisterRoutes(router, f, hub.Options{
		CatalogRedis:           redisFactory.CatalogClient(),
		CatalogTTL:             cfg.CatalogTTL,
		JWTSecret:              cfg.JWTSecret,
		ExposeSupplierRequests: cfg.ExposeSupplierRequests,
	})

	return router
}
