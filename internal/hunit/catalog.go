package hunit

import (
	"context"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"bitbucket.org/crgw/hunit-hub/internal/tools/converting"
	"github.com/beevik/etree"
)

// Package is a processing package HUnit still has to deliver to a portal.
type Package struct {
	ID             string     `json:"id"`
	PortalID       string     `json:"portalId,omitempty"`
	PortalName     string     `json:"portalName,omitempty"`
	CreateDateTime *time.Time `json:"createDateTime,omitempty"`
	// 1 pending, 3 failed
	Status          string `json:"status,omitempty"`
	AttemptsSending string `json:"attemptsSending,omitempty"`
}

// RoomRate is a room type and rate combination of the hotel.
type RoomRate struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	IsActive         bool   `json:"isActive"`
	IsChildRoomRate  bool   `json:"isChildRoomRate"`
	MasterRoomRateID string `json:"masterRoomRateId,omitempty"`
	MasterRoomRate   string `json:"masterRoomRate,omitempty"`
}

func (c *Client) PackageRead(ctx context.Context) ([]Package, error) {
	root, err := c.execute(ctx, packageReadOperation)
	if err != nil {
		return nil, err
	}

	packages := []Package{}
	for _, el := range xmltree.List(root, "package") {
		packages = append(packages, packageFromXML(el))
	}

	return packages, nil
}

func (c *Client) RoomRateRead(ctx context.Context) ([]RoomRate, error) {
	root, err := c.execute(ctx, roomRateReadOperation)
	if err != nil {
		return nil, err
	}

	roomRates := []RoomRate{}
	for _, el := range xmltree.List(root, "roomRate") {
		roomRates = append(roomRates, roomRateFromXML(el))
	}

	return roomRates, nil
}

func packageFromXML(el *etree.Element) Package {
	return Package{
		ID:              xmltree.Attr(el, "id").String(),
		PortalID:        xmltree.Attr(el, "portalId").String(),
		PortalName:      xmltree.Attr(el, "portalName").String(),
		CreateDateTime:  dateTime(xmltree.Attr(el, "createDateTime")),
		Status:          xmltree.Attr(el, "status").String(),
		AttemptsSending: xmltree.Attr(el, "attemptsSending").String(),
	}
}

func roomRateFromXML(el *etree.Element) RoomRate {
	roomRate := RoomRate{
		ID:              xmltree.Attr(el, "id").String(),
		Name:            xmltree.Attr(el, "name").String(),
		IsActive:        xmltree.Attr(el, "isActive").Bool(),
		IsChildRoomRate: xmltree.Attr(el, "isChildRoomRate").Bool(),
	}

	if roomRate.IsChildRoomRate {
		// the service spells the master name attribute with a capital M
		masterName := xmltree.Attr(el, "MasterRoomRate")
		if !masterName.Present() {
			masterName = xmltree.Attr(el, "masterRoomRate")
		}

		roomRate.MasterRoomRateID = xmltree.Attr(el, "masterRoomRateId").String()
		roomRate.MasterRoomRate = masterName.String()
	}

	return roomRate
}

// dateTime reads an ISO timestamp. The service sends 0001-01-01T00:00:00 when it has no
// value, which is treated as absent.
func dateTime(value xmltree.Value) *time.Time {
	if !value.Present() {
		return nil
	}

	t, err := converting.ParseDateTime(value.String())
	if err != nil || t.IsZero() {
		return nil
	}

	return &t
}

// stayDate reads a DD/MM/YYYY date.
func stayDate(value xmltree.Value) *time.Time {
	if !value.Present() {
		return nil
	}

	t, err := converting.StrToDate(value.String())
	if err != nil {
		return nil
	}

	return &t
}
