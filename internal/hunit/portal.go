package hunit

import (
	"context"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"github.com/beevik/etree"
)

// Portal is a distribution channel connected to the hotel.
type Portal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	// Child portals share the extranet of their master, e.g. Hotels.com and Expedia
	IsChildPortal  bool   `json:"isChildPortal"`
	MasterPortalID string `json:"masterPortalId,omitempty"`
	MasterPortal   string `json:"masterPortal,omitempty"`
}

func (c *Client) PortalRead(ctx context.Context) ([]Portal, error) {
	root, err := c.execute(ctx, portalReadOperation)
	if err != nil {
		return nil, err
	}

	return portalsFromXML(root), nil
}

func portalsFromXML(root *etree.Element) []Portal {
	portals := []Portal{}
	for _, el := range xmltree.List(root, "portal") {
		portals = append(portals, portalFromXML(el))
	}

	return portals
}

func portalFromXML(el *etree.Element) Portal {
	portal := Portal{
		ID:            xmltree.Attr(el, "id").String(),
		Name:          xmltree.Attr(el, "name").String(),
		IsActive:      xmltree.Attr(el, "isActive").Bool(),
		IsChildPortal: xmltree.Attr(el, "isChildPortal").Bool(),
	}

	if portal.IsChildPortal {
		portal.MasterPortalID = xmltree.Attr(el, "masterPortalId").String()
		portal.MasterPortal = xmltree.Attr(el, "masterPortal").String()
	}

	return portal
}
