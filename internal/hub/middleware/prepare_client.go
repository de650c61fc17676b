package middleware

import (
	"net/http"

	"bitbucket.org/crgw/hunit-hub/internal/hub/interfaces"
	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

type factory interface {
	GetClient(hotelID string) (interfaces.Channel, error)
	OneCallClient() interfaces.Channel
}

const (
	ClientKey  string = "client"
	HotelParam string = "hotelId"
)

func PrepareClient(f factory) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		client, err := f.GetClient(ctx.Params.ByName(HotelParam))
		if err != nil {
			responding.HandleError(ctx, http.StatusNotFound, "Failed to find hotel", err)
			return
		}

		ctx.Set(ClientKey, client)
	}
}

func PrepareOneCallClient(f factory) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(ClientKey, f.OneCallClient())
	}
}
