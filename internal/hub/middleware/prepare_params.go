package middleware

import (
	"net/http"
	"reflect"

	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

const (
	ParamsKey string = "params"
)

// PrepareParams binds the JSON body into a new value of val's type, stored as a pointer.
// Types with a Validate method are checked after binding.
func PrepareParams(val any) gin.HandlerFunc {
	value := reflect.ValueOf(val)
	if value.Kind() == reflect.Ptr {
		panic(`Bind struct can not be a pointer.`)
	}

	typ := value.Type()

	return func(ctx *gin.Context) {
		params := reflect.New(typ).Interface()

		err := ctx.ShouldBindJSON(params)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadRequest, "Failed to bind request params", err)
			return
		}

		if validator, ok := params.(interface{ Validate() error }); ok {
			if err := validator.Validate(); err != nil {
				responding.HandleError(ctx, http.StatusBadRequest, "Invalid request params", err)
				return
			}
		}

		ctx.Set(ParamsKey, params)
	}
}
