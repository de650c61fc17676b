package hunit

import (
	"context"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"github.com/beevik/etree"
)

// ReservationConfirm acknowledges a reservation read from the service.
type ReservationConfirm struct {
	// Only used by the OneCall confirmation
	HotelID                  string
	ReservationID            string
	PMSReservationIdentifier string
}

// ConfirmePost confirms reservations of the client hotel.
func (c *Client) ConfirmePost(ctx context.Context, confirmations []ReservationConfirm) (bool, error) {
	return c.update(ctx, confirmePostOperation, confirmationsToXML(confirmations))
}

// BookingConfirmationOneCall confirms reservations of several hotels, each carrying its HotelID.
func (c *Client) BookingConfirmationOneCall(ctx context.Context, confirmations []ReservationConfirm) (bool, error) {
	return c.update(ctx, bookingConfirmationOneCallOperation, confirmationsToXML(confirmations))
}

func confirmationsToXML(confirmations []ReservationConfirm) *etree.Element {
	el := etree.NewElement("confirmations")

	for _, confirmation := range confirmations {
		item := el.CreateElement("confirmation")
		xmltree.OptionalText(item, "hotelId", confirmation.HotelID)
		xmltree.Text(item, "reservationId", confirmation.ReservationID)
		xmltree.OptionalText(item, "pmsReservationIdentifier", confirmation.PMSReservationIdentifier)
	}

	return el
}
