package interfaces

import (
	"context"

	"bitbucket.org/crgw/hunit-hub/internal/hunit"
)

type WithCatalog interface {
	PortalRead(context.Context) ([]hunit.Portal, error)
	RoomRateRead(context.Context) ([]hunit.RoomRate, error)
	PackageRead(context.Context) ([]hunit.Package, error)
}

type WithReservations interface {
	BookingRead(context.Context) ([]hunit.Reservation, error)
	BookingByIDRead(context.Context, hunit.BookingByIDSearch) (*hunit.Reservation, error)
	ConfirmePost(context.Context, []hunit.ReservationConfirm) (bool, error)
}

type WithInventory interface {
	AvailabilityUpdate(context.Context, []hunit.InventoryUpdate) (bool, error)
	OccupancyRateUpdate(context.Context, []hunit.OccupancyRate) (bool, error)
}

type WithOneCall interface {
	BookingReadOneCall(context.Context) ([]hunit.Reservation, error)
	BookingConfirmationOneCall(context.Context, []hunit.ReservationConfirm) (bool, error)
}

// Channel is everything a hub route may ask from a hunit client.
type Channel interface {
	WithCatalog
	WithReservations
	WithInventory
	WithOneCall
}
