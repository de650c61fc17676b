package hunit_test

import (
	"bytes"
	"context"
	"testing"

	"bitbucket.org/crgw/hunit-hub/internal/hunit"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPortalRead(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)
	s := newSupplier(t)

	tests := []struct {
		name         string
		responseFile string
		expected     []hunit.Portal
	}{
		{
			"list of portals",
			"./testdata/portal_rs.xml",
			[]hunit.Portal{
				{ID: "1", Name: "Expedia", IsActive: true},
				{ID: "2", Name: "Booking.com", IsActive: true},
				{ID: "3", Name: "Hotels.com", IsActive: true, IsChildPortal: true, MasterPortalID: "1", MasterPortal: "Expedia"},
				{ID: "4", Name: "Venere", IsActive: true, IsChildPortal: true, MasterPortalID: "1", MasterPortal: "Expedia"},
				{ID: "5", Name: "HBOOK", IsActive: true},
				{ID: "6", Name: "Orbitz", IsActive: false},
				{ID: "7", Name: "Decolar", IsActive: true},
			},
		},
		{
			"single portal",
			"./testdata/portal_single_rs.xml",
			[]hunit.Portal{
				{ID: "2", Name: "Booking.com", IsActive: true},
			},
		},
		{
			"no portals",
			"./testdata/portal_empty_rs.xml",
			[]hunit.Portal{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			called := s.expect(t, "portal/read", "./testdata/requests/portal_read.xml", test.responseFile)

			portals, err := s.client(&log).PortalRead(context.Background())

			assert.Nil(t, err)
			assert.True(t, *called)
			assert.Equal(t, test.expected, portals)
		})
	}
}
