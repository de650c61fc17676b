package middleware

import (
	"net/http"

	hubErrors "bitbucket.org/crgw/hunit-hub/internal/hub/errors"
	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PrepareLookup binds the reservation lookup query. At least one identifier is required.
func PrepareLookup(ctx *gin.Context) {
	var params schema.LookupRequestParams
	query := ctx.Request.URL.Query()

	bindings := []struct {
		name string
		dest **string
	}{
		{"locatorId", &params.LocatorId},
		{"portalId", &params.PortalId},
		{"channelReservationId", &params.ChannelReservationId},
	}

	for _, binding := range bindings {
		err := runtime.BindQueryParameter("form", true, false, binding.name, query, binding.dest)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadRequest, "Invalid format for parameter "+binding.name, err)
			return
		}
	}

	if params.LocatorId == nil && params.PortalId == nil && params.ChannelReservationId == nil {
		responding.HandleError(ctx, http.StatusBadRequest, "Failed to bind request params", hubErrors.ErrorMissingLookupParams)
		return
	}

	ctx.Set(ParamsKey, &params)
}
