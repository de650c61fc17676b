package hub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	hubMiddleware "bitbucket.org/crgw/hunit-hub/internal/hub/middleware"
	"bitbucket.org/crgw/hunit-hub/internal/hub/interfaces"
	"bitbucket.org/crgw/hunit-hub/internal/hunit"
	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/requesting"
	"bitbucket.org/crgw/hunit-hub/internal/tools/responding"
	"bitbucket.org/crgw/hunit-hub/internal/tools/slowlog"
	"bitbucket.org/crgw/hunit-hub/internal/trafficlight/grouping"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Options struct {
	// Catalog reads are grouped only with a redis client
	CatalogRedis           *redis.Client
	CatalogTTL             time.Duration
	JWTSecret              string
	ExposeSupplierRequests bool
}

type factory interface {
	GetClient(hotelID string) (interfaces.Channel, error)
	OneCallClient() interfaces.Channel
}

type operationFunc func(ctx context.Context, client interfaces.Channel, params any) (any, error)

type handlers struct {
	exposeSupplierRequests bool
}

// operation runs one hunit call and answers with the common response shape.
// Supplier failures end up in errors with status 200.
func (h *handlers) operation(name string, call operationFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		defer slowlog.Track(slowlog.CreateLogger(logger), "hunit:"+name)()

		client, ok := ctx.MustGet(hubMiddleware.ClientKey).(interfaces.Channel)
		if !ok {
			responding.HandleError(ctx, http.StatusInternalServerError, "Missing hunit client", nil)
			return
		}

		params, _ := ctx.Get(hubMiddleware.ParamsKey)

		bucket := schema.NewSupplierRequestsBucket()
		requestContext := requesting.WithBucket(logger.WithContext(ctx.Request.Context()), &bucket)

		data, err := call(requestContext, client, params)

		response := schema.Response{
			Data:   data,
			Errors: responseErrors(logger, err),
		}

		if err != nil {
			response.Data = nil
		}

		if h.exposeSupplierRequests {
			response.SupplierRequests = bucket.SupplierRequests()
		}

		ctx.JSON(http.StatusOK, response)
	}
}

func responseErrors(logger *zerolog.Logger, err error) *schema.ResponseErrors {
	errorsBucket := schema.NewErrorsBucket()
	if err == nil {
		return errorsBucket.Errors()
	}

	logger.Warn().Err(err).Msg("HUnit request failed")

	var upstreamError *hunit.UpstreamError
	var transportError *requesting.TransportError

	switch {
	case errors.As(err, &upstreamError) && len(upstreamError.Entries) > 0:
		for _, entry := range upstreamError.Entries {
			errorsBucket.AddError(schema.NewValidationError(entry.Code, entry.Message))
		}
	case errors.As(err, &transportError):
		errorsBucket.AddError(transportError.ResponseError())
	default:
		errorsBucket.AddError(schema.NewSupplierError(err.Error()))
	}

	return errorsBucket.Errors()
}

func updated(ok bool, err error) (any, error) {
	return schema.UpdateResult{Success: ok}, err
}

func catalogGrouping(o Options, name string) gin.HandlerFunc {
	return grouping.Middleware(grouping.MiddlewareOptions{
		CreateManager: grouping.NewRequestManager,
		RedisClient:   o.CatalogRedis,
		TTL:           o.CatalogTTL,
		CacheKey: func(c *gin.Context) string {
			return fmt.Sprintf("grouping:hunit:%s:%s", c.Params.ByName(hubMiddleware.HotelParam), name)
		},
	})
}

func RegisterRoutes(router *gin.Engine, f factory, o Options) {
	h := &handlers{exposeSupplierRequests: o.ExposeSupplierRequests}

	hotels := router.Group(
		"/hotels/:"+hubMiddleware.HotelParam,
		hubMiddleware.AuthorizeHotel(o.JWTSecret),
		hubMiddleware.PrepareClient(f),
		hubMiddleware.TapLogger,
	)

	hotels.GET("/portals",
		catalogGrouping(o, "portals"),
		h.operation("portals", func(ctx context.Context, client interfaces.Channel, _ any) (any, error) {
			return client.PortalRead(ctx)
		}),
	)

	hotels.GET("/room-rates",
		catalogGrouping(o, "room-rates"),
		h.operation("room-rates", func(ctx context.Context, client interfaces.Channel, _ any) (any, error) {
			return client.RoomRateRead(ctx)
		}),
	)

	hotels.GET("/packages",
		h.operation("packages", func(ctx context.Context, client interfaces.Channel, _ any) (any, error) {
			return client.PackageRead(ctx)
		}),
	)

	hotels.GET("/reservations",
		h.operation("reservations", func(ctx context.Context, client interfaces.Channel, _ any) (any, error) {
			return client.BookingRead(ctx)
		}),
	)

	hotels.GET("/reservations/lookup",
		hubMiddleware.PrepareLookup,
		h.operation("reservations:lookup", func(ctx context.Context, client interfaces.Channel, params any) (any, error) {
			return client.BookingByIDRead(ctx, bookingSearch(params.(*schema.LookupRequestParams)))
		}),
	)

	hotels.POST("/reservations/confirmations",
		hubMiddleware.PrepareParams(schema.ConfirmationRequestParams{}),
		h.operation("reservations:confirmations", func(ctx context.Context, client interfaces.Channel, params any) (any, error) {
			return updated(client.ConfirmePost(ctx, confirmations(params.(*schema.ConfirmationRequestParams), false)))
		}),
	)

	hotels.POST("/availability",
		hubMiddleware.PrepareParams(schema.AvailabilityRequestParams{}),
		h.operation("availability", func(ctx context.Context, client interfaces.Channel, params any) (any, error) {
			return updated(client.AvailabilityUpdate(ctx, inventoryUpdates(params.(*schema.AvailabilityRequestParams))))
		}),
	)

	hotels.POST("/occupancy-rates",
		hubMiddleware.PrepareParams(schema.OccupancyRequestParams{}),
		h.operation("occupancy-rates", func(ctx context.Context, client interfaces.Channel, params any) (any, error) {
			return updated(client.OccupancyRateUpdate(ctx, occupancyRates(params.(*schema.OccupancyRequestParams))))
		}),
	)

	oneCall := router.Group(
		"/onecall",
		hubMiddleware.AuthorizeHotel(o.JWTSecret),
		hubMiddleware.PrepareOneCallClient(f),
		hubMiddleware.TapLogger,
	)

	oneCall.GET("/reservations",
		h.operation("onecall:reservations", func(ctx context.Context, client interfaces.Channel, _ any) (any, error) {
			return client.BookingReadOneCall(ctx)
		}),
	)

	oneCall.POST("/reservations/confirmations",
		hubMiddleware.PrepareParams(schema.OneCallConfirmationRequestParams{}),
		h.operation("onecall:reservations:confirmations", func(ctx context.Context, client interfaces.Channel, params any) (any, error) {
			request := params.(*schema.OneCallConfirmationRequestParams)
			return updated(client.BookingConfirmationOneCall(ctx, confirmations(&request.ConfirmationRequestParams, true)))
		}),
	)
}
