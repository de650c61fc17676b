// Package hunit is a client for the HUnit channel manager XML api.
//
// Every operation posts one envelope carrying the client credentials and parses the
// answer into typed records. Remote validation failures are returned as *UpstreamError,
// HTTP failures as *requesting.TransportError.
package hunit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"bitbucket.org/crgw/hunit-hub/internal/schema"
	"bitbucket.org/crgw/hunit-hub/internal/tools/requesting"
	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

type Credentials struct {
	HotelID  string
	UserName string
	Password string
}

type Client struct {
	credentials Credentials
	baseURL     string
	httpClient  *http.Client
}

func New(credentials Credentials, optionFuncs ...OptionFunc) *Client {
	o := newOptions(optionFuncs...)

	return &Client{
		credentials: credentials,
		baseURL:     o.baseURL,
		httpClient: &http.Client{
			Timeout: o.timeout,
			Transport: &requesting.InterceptorTransport{
				Transport: o.transport,
				Middlewares: []requesting.TransportMiddleware{
					requesting.NewLoggingTransportMiddleware(o.logger),
					requesting.NewBucketTransportMiddleware(nil),
				},
			},
		},
	}
}

func (c *Client) Credentials() Credentials {
	return c.credentials
}

type operation struct {
	name         schema.SupplierRequestName
	path         string
	requestRoot  string
	responseRoot string
	// OneCall operations span every hotel of the credentials and carry no hotelId
	oneCall bool
}

var (
	portalReadOperation                 = operation{schema.PortalRead, "portal/read", "portalRQ", "portalRS", false}
	availabilityUpdateOperation         = operation{schema.AvailabilityUpdate, "availability/update", "updateRQ", "updateRS", false}
	bookingReadOperation                = operation{schema.BookingRead, "booking/read", "reservationRQ", "reservationRS", false}
	confirmePostOperation               = operation{schema.ConfirmePost, "confirme/post", "reservationConfirmeRQ", "reservationConfirmeRS", false}
	packageReadOperation                = operation{schema.PackageRead, "package/read", "packageRQ", "packageRS", false}
	roomRateReadOperation               = operation{schema.RoomRateRead, "roomrate/read", "roomRateRQ", "roomRateRS", false}
	bookingByIDReadOperation            = operation{schema.BookingByIDRead, "bookingbyid/read", "reservationByIdRQ", "reservationByIdRS", false}
	bookingReadOneCallOperation         = operation{schema.BookingReadOneCall, "booking/readonecall", "reservationRQ", "ArrayOfTReservationRS", true}
	bookingConfirmationOneCallOperation = operation{schema.BookingConfirmationOneCall, "booking/confirmationonecall", "reservationConfirmeRQ", "reservationConfirmeRS", true}
	occupancyRateUpdateOperation        = operation{schema.OccupancyRateUpdate, "occupancyrate/update", "occupancyRateRQ", "occupancyRateRS", false}
)

// envelope wraps content into the credentials block. The service validates the
// element order, so userName, password and hotelId always come first.
func (c *Client) envelope(op operation, content ...*etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmltree.Declaration)

	root := doc.CreateElement(op.requestRoot)
	xmltree.Text(root, "userName", c.credentials.UserName)
	xmltree.Text(root, "password", c.credentials.Password)

	if !op.oneCall {
		xmltree.Text(root, "hotelId", c.credentials.HotelID)
	}

	for _, el := range content {
		root.AddChild(el)
	}

	return doc
}

func (c *Client) makeRequest(ctx context.Context, op operation, body []byte) (*http.Response, error) {
	ctx = context.WithValue(ctx, schema.RequestingTypeKey, op.name)

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+op.path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Accept", "application/xml")
	httpRequest.Header.Set("Content-Type", "application/xml")
	httpRequest.Header.Set("Cache-Control", "no-cache")

	return c.httpClient.Do(httpRequest)
}

// execute posts the envelope of op and returns the response root.
func (c *Client) execute(ctx context.Context, op operation, content ...*etree.Element) (*etree.Element, error) {
	body, err := c.envelope(op, content...).WriteToBytes()
	if err != nil {
		return nil, err
	}

	response, err := requesting.RequestErrors(c.makeRequest(ctx, op, body))
	if err != nil {
		return nil, err
	}

	bodyBytes, err := io.ReadAll(response.Body)
	response.Body.Close()
	if err != nil {
		return nil, &requesting.TransportError{Code: schema.ConnectionError, Err: err}
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil, ErrEmptyResponse
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(bodyBytes); err != nil {
		return nil, fmt.Errorf("hunit: %s: reading response: %w", op.path, err)
	}

	root, err := readEnvelope(doc)
	if err != nil {
		return nil, err
	}

	if root.Tag != op.responseRoot {
		return nil, fmt.Errorf("%w: expected <%s>, got <%s>", ErrUnexpectedResponse, op.responseRoot, root.Tag)
	}

	return root, nil
}

// readEnvelope returns the first top level element, failing when it reports errors.
func readEnvelope(doc *etree.Document) (*etree.Element, error) {
	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyResponse
	}

	if errorsEl := root.SelectElement("errors"); errorsEl != nil {
		return nil, newUpstreamError(root.Tag, errorsEl)
	}

	return root, nil
}

// update posts a write operation. Success is an answer with the expected root and no errors.
func (c *Client) update(ctx context.Context, op operation, content ...*etree.Element) (bool, error) {
	if _, err := c.execute(ctx, op, content...); err != nil {
		return false, err
	}

	return true, nil
}
