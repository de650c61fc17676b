package hub

import (
	"bitbucket.org/crgw/hunit-hub/internal/hunit"
	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/converting"
)

func inventoryUpdates(params *schema.AvailabilityRequestParams) []hunit.InventoryUpdate {
	updates := make([]hunit.InventoryUpdate, 0, len(params.Updates))

	for _, update := range params.Updates {
		dateRange := update.DateRange

		updates = append(updates, hunit.InventoryUpdate{
			RoomTypeID:   update.RoomTypeId,
			Availability: update.Availability,
			StopSell:     update.StopSell,
			PortalID:     update.PortalId,
			DateRange: hunit.DateRange{
				From: dateRange.From.Time,
				To:   dateRange.To.Time,
				Sun:  dateRange.Sun,
				Mon:  dateRange.Mon,
				Tue:  dateRange.Tue,
				Wed:  dateRange.Wed,
				Thu:  dateRange.Thu,
				Fri:  dateRange.Fri,
				Sat:  dateRange.Sat,
			},
		})
	}

	return updates
}

func occupancyRates(params *schema.OccupancyRequestParams) []hunit.OccupancyRate {
	rates := make([]hunit.OccupancyRate, 0, len(params.Updates))

	for _, update := range params.Updates {
		rates = append(rates, hunit.OccupancyRate{
			Date:      update.Date.Time,
			Occupancy: update.Occupancy,
		})
	}

	return rates
}

// confirmations keeps the hotel of each entry only for OneCall requests,
// otherwise the hotel of the envelope applies.
func confirmations(params *schema.ConfirmationRequestParams, oneCall bool) []hunit.ReservationConfirm {
	result := make([]hunit.ReservationConfirm, 0, len(params.Confirmations))

	for _, confirmation := range params.Confirmations {
		item := hunit.ReservationConfirm{
			ReservationID:            confirmation.ReservationId,
			PMSReservationIdentifier: confirmation.PmsReservationIdentifier,
		}

		if oneCall {
			item.HotelID = confirmation.HotelId
		}

		result = append(result, item)
	}

	return result
}

func bookingSearch(params *schema.LookupRequestParams) hunit.BookingByIDSearch {
	return hunit.BookingByIDSearch{
		LocatorID:            converting.Unwrap(params.LocatorId),
		PortalID:             converting.Unwrap(params.PortalId),
		ChannelReservationID: converting.Unwrap(params.ChannelReservationId),
	}
}
