package hunit

import (
	"context"
	"strconv"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"bitbucket.org/crgw/hunit-hub/internal/tools/converting"
	"github.com/beevik/etree"
)

// DateRange is a period restricted to some days of the week.
// Without any day set to true every day is included, otherwise only the days set to true.
type DateRange struct {
	From time.Time
	To   time.Time
	Sun  *bool
	Mon  *bool
	Tue  *bool
	Wed  *bool
	Thu  *bool
	Fri  *bool
	Sat  *bool
}

// InventoryUpdate changes availability or stop sell of a room type for a period.
type InventoryUpdate struct {
	RoomTypeID   string
	Availability *int
	StopSell     *bool
	PortalID     string
	DateRange    DateRange
}

func (c *Client) AvailabilityUpdate(ctx context.Context, updates []InventoryUpdate) (bool, error) {
	return c.update(ctx, availabilityUpdateOperation, inventoryToXML(updates))
}

func inventoryToXML(updates []InventoryUpdate) *etree.Element {
	el := etree.NewElement("updates")

	for _, update := range updates {
		item := el.CreateElement("update")
		xmltree.Text(item, "roomTypeId", update.RoomTypeID)

		if update.Availability != nil {
			xmltree.Text(item, "availability", strconv.Itoa(*update.Availability))
		}

		if update.StopSell != nil {
			xmltree.Text(item, "stopSell", xmltree.Bool(*update.StopSell))
		}

		xmltree.OptionalText(item, "portalId", update.PortalID)

		item.AddChild(dateRangeToXML(update.DateRange))
	}

	return el
}

func dateRangeToXML(dateRange DateRange) *etree.Element {
	el := etree.NewElement("dateRange")
	el.CreateAttr("from", converting.DateToStr(&dateRange.From, converting.RangeDateFormat))
	el.CreateAttr("to", converting.DateToStr(&dateRange.To, converting.RangeDateFormat))

	days := []struct {
		name string
		flag *bool
	}{
		{"sun", dateRange.Sun},
		{"mon", dateRange.Mon},
		{"tue", dateRange.Tue},
		{"wed", dateRange.Wed},
		{"thu", dateRange.Thu},
		{"fri", dateRange.Fri},
		{"sat", dateRange.Sat},
	}

	selected := false
	for _, day := range days {
		if converting.Unwrap(day.flag) {
			selected = true
		}
	}

	// unset days follow the selection: excluded when some day is picked, included otherwise
	for _, day := range days {
		value := !selected
		if day.flag != nil {
			value = *day.flag
		}
		el.CreateAttr(day.name, xmltree.Bool(value))
	}

	return el
}
