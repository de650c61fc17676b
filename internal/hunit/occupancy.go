package hunit

import (
	"context"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"bitbucket.org/crgw/hunit-hub/internal/tools/converting"
	"github.com/beevik/etree"
)

// OccupancyRate is the hotel occupancy percentage of one day.
type OccupancyRate struct {
	Date      time.Time
	Occupancy float64
}

func (c *Client) OccupancyRateUpdate(ctx context.Context, rates []OccupancyRate) (bool, error) {
	return c.update(ctx, occupancyRateUpdateOperation, occupancyToXML(rates))
}

func occupancyToXML(rates []OccupancyRate) *etree.Element {
	el := etree.NewElement("updates")

	for _, rate := range rates {
		item := el.CreateElement("update")
		item.CreateAttr("date", converting.DateToStr(&rate.Date, converting.RangeDateFormat))
		item.CreateAttr("occupancy", xmltree.Number(rate.Occupancy))
	}

	return el
}
