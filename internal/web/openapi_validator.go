package web

import (
	"fmt"
	"net/http"

	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
)

// LoadOpenapi reads and validates the api description. Servers are dropped so
// routes match whatever host the hub listens on.
func LoadOpenapi(location string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(location)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", location, err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid api description %s: %w", location, err)
	}

	doc.Servers = nil

	return doc, nil
}

// OpenapiValidator rejects requests that do not match the api description.
// Routes missing from the description are let through.
func OpenapiValidator(doc *openapi3.T) (gin.HandlerFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		validateRequest(c, router)
	}, nil
}

func validateRequest(c *gin.Context, router routers.Router) {
	route, pathParams, err := router.FindRoute(c.Request)
	if err != nil {
		return
	}

	err = openapi3filter.ValidateRequest(c.Request.Context(), &openapi3filter.RequestValidationInput{
		Request:    c.Request,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	})

	if err != nil {
		responding.HandleError(c, http.StatusBadRequest, "Request does not match the api description", err)
	}
}
