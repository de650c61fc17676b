package errors

import "errors"

var (
	ErrorInvalidHotel        = errors.New("invalid hotel id")
	ErrorMissingLookupParams = errors.New("one of locatorId, portalId or channelReservationId is required")
	ErrorMissingToken        = errors.New("missing bearer token")
	ErrorHotelNotAllowed     = errors.New("hotel not allowed for token")
)
