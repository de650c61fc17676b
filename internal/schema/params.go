package schema

import "errors"

var (
	ErrInvalidDateRange     = errors.New("dateRange needs from and to, with to not before from")
	ErrMissingOccupancyDate = errors.New("every occupancy rate needs a date")
	ErrMissingConfirmHotel  = errors.New("every confirmation needs a hotelId")
)

type DateRangeParams struct {
	From Date  `json:"from"`
	To   Date  `json:"to"`
	Sun  *bool `json:"sun,omitempty"`
	Mon  *bool `json:"mon,omitempty"`
	Tue  *bool `json:"tue,omitempty"`
	Wed  *bool `json:"wed,omitempty"`
	Thu  *bool `json:"thu,omitempty"`
	Fri  *bool `json:"fri,omitempty"`
	Sat  *bool `json:"sat,omitempty"`
}

func (d DateRangeParams) Validate() error {
	if d.From.IsZero() || d.To.IsZero() || d.To.Before(d.From.Time) {
		return ErrInvalidDateRange
	}

	return nil
}

type InventoryUpdateParams struct {
	RoomTypeId   string          `json:"roomTypeId" binding:"required"`
	Availability *int            `json:"availability,omitempty" binding:"omitempty,min=0"`
	StopSell     *bool           `json:"stopSell,omitempty"`
	PortalId     string          `json:"portalId,omitempty"`
	DateRange    DateRangeParams `json:"dateRange"`
}

type AvailabilityRequestParams struct {
	Updates []InventoryUpdateParams `json:"updates" binding:"required,min=1,dive"`
}

func (p *AvailabilityRequestParams) Validate() error {
	for _, update := range p.Updates {
		if err := update.DateRange.Validate(); err != nil {
			return err
		}
	}

	return nil
}

type OccupancyRateParams struct {
	Date      Date    `json:"date"`
	Occupancy float64 `json:"occupancy" binding:"min=0,max=100"`
}

type OccupancyRequestParams struct {
	Updates []OccupancyRateParams `json:"updates" binding:"required,min=1,dive"`
}

func (p *OccupancyRequestParams) Validate() error {
	for _, update := range p.Updates {
		if update.Date.IsZero() {
			return ErrMissingOccupancyDate
		}
	}

	return nil
}

type ConfirmationParams struct {
	HotelId                  string `json:"hotelId,omitempty"`
	ReservationId            string `json:"reservationId" binding:"required"`
	PmsReservationIdentifier string `json:"pmsReservationIdentifier,omitempty"`
}

type ConfirmationRequestParams struct {
	Confirmations []ConfirmationParams `json:"confirmations" binding:"required,min=1,dive"`
}

// OneCallConfirmationRequestParams confirms reservations of several hotels at once.
type OneCallConfirmationRequestParams struct {
	ConfirmationRequestParams
}

func (p *OneCallConfirmationRequestParams) Validate() error {
	for _, confirmation := range p.Confirmations {
		if confirmation.HotelId == "" {
			return ErrMissingConfirmHotel
		}
	}

	return nil
}

type LookupRequestParams struct {
	LocatorId            *string `url:"locatorId,omitempty"`
	PortalId             *string `url:"portalId,omitempty"`
	ChannelReservationId *string `url:"channelReservationId,omitempty"`
}

type Response struct {
	Data             any               `json:"data"`
	Errors           *ResponseErrors   `json:"errors"`
	SupplierRequests *SupplierRequests `json:"supplierRequests,omitempty"`
}

type UpdateResult struct {
	Success bool `json:"success"`
}

type StatusResponse struct {
	Uptime float64 `json:"uptime"`
}
