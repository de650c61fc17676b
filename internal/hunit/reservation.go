package hunit

import (
	"context"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"github.com/beevik/etree"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type Guest struct {
	FirstName      string   `json:"firstName,omitempty"`
	LastName       string   `json:"lastName,omitempty"`
	Email          string   `json:"email,omitempty"`
	DocumentType   string   `json:"documentType,omitempty"`
	DocumentNumber string   `json:"documentNumber,omitempty"`
	Document       string   `json:"document,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Address        *Address `json:"address,omitempty"`
}

// Payment is only sent for credit card reservations, with masked card data.
type Payment struct {
	CardType             string   `json:"cardType,omitempty"`
	CardNumber           string   `json:"cardNumber,omitempty"`
	CardHolderName       string   `json:"cardHolderName,omitempty"`
	SeriesCode           string   `json:"seriesCode,omitempty"`
	ExpireDate           string   `json:"expireDate,omitempty"`
	PrePaymentValue      *float64 `json:"prePaymentValue,omitempty"`
	NumberOfInstallments *float64 `json:"numberOfInstallments,omitempty"`
	InstallmentValue     *float64 `json:"installmentValue,omitempty"`
	PrePaymentCharged    *bool    `json:"prePaymentCharged,omitempty"`
	AuthorizationCode    string   `json:"authorizationCode,omitempty"`
}

type Addon struct {
	Name       string   `json:"name,omitempty"`
	TotalValue *float64 `json:"totalValue,omitempty"`
}

type DailyRate struct {
	Date       *time.Time `json:"date,omitempty"`
	TotalValue *float64   `json:"totalValue,omitempty"`
}

type Room struct {
	ID            string      `json:"id,omitempty"`
	RoomLocatorID string      `json:"roomLocatorId,omitempty"`
	RoomTypeID    string      `json:"roomTypeId,omitempty"`
	Status        string      `json:"status,omitempty"`
	ArrivalDate   *time.Time  `json:"arrivalDate,omitempty"`
	DepartureDate *time.Time  `json:"departureDate,omitempty"`
	Adults        *float64    `json:"adults,omitempty"`
	Children      *float64    `json:"children,omitempty"`
	AgeChildren   []float64   `json:"ageChildren,omitempty"`
	TotalValue    *float64    `json:"totalValue,omitempty"`
	MealPlan      string      `json:"mealPlan,omitempty"`
	Remark        string      `json:"remark,omitempty"`
	Addons        []Addon     `json:"addons,omitempty"`
	DailyRates    []DailyRate `json:"dailyRates,omitempty"`
	// Occupant of the room, not necessarily the reservation holder
	Guest *Guest `json:"guest,omitempty"`
}

type Reservation struct {
	HotelID              string     `json:"hotelId,omitempty"`
	PortalID             string     `json:"portalId,omitempty"`
	ID                   string     `json:"id,omitempty"`
	Status               string     `json:"status,omitempty"`
	CreateDateTime       *time.Time `json:"createDateTime,omitempty"`
	CancellationDateTime *time.Time `json:"cancellationDateTime,omitempty"`
	PaymentType          string     `json:"paymentType,omitempty"`
	Remark               string     `json:"remark,omitempty"`
	CurrencyCode         string     `json:"currencyCode,omitempty"`
	// Identifier assigned by HUnit, used by every later call about the reservation
	LocatorID   string   `json:"locatorId,omitempty"`
	TotalValue  *float64 `json:"totalValue,omitempty"`
	TotalAddOns *float64 `json:"totalAddOns,omitempty"`
	// HotelCollect or CanalCollect
	CollectType string   `json:"collectType,omitempty"`
	Guest       *Guest   `json:"guest,omitempty"`
	Payment     *Payment `json:"payment,omitempty"`
	Rooms       []Room   `json:"rooms"`
}

// BookingByIDSearch finds a reservation by its locator or by portal and channel ids.
type BookingByIDSearch struct {
	LocatorID            string
	PortalID             string
	ChannelReservationID string
}

var (
	holderFields  = []string{"firstName", "lastName", "email", "documentType", "documentNumber", "document", "phone", "address"}
	paymentFields = []string{
		"cardType", "cardNumber", "cardHolderName", "seriesCode", "expireDate", "authorizationCode",
		"prePaymentValue", "numberOfInstallments", "installmentValue", "prePaymentCharged",
	}
)

func (c *Client) BookingRead(ctx context.Context) ([]Reservation, error) {
	root, err := c.execute(ctx, bookingReadOperation)
	if err != nil {
		return nil, err
	}

	return reservationsFromXML(root), nil
}

// BookingByIDRead returns nil when the service knows no such reservation.
func (c *Client) BookingByIDRead(ctx context.Context, search BookingByIDSearch) (*Reservation, error) {
	content := []*etree.Element{}
	for _, field := range []struct{ name, value string }{
		{"locatorId", search.LocatorID},
		{"portalId", search.PortalID},
		{"channelReservationId", search.ChannelReservationID},
	} {
		if field.value == "" {
			continue
		}
		el := etree.NewElement(field.name)
		el.SetText(field.value)
		content = append(content, el)
	}

	root, err := c.execute(ctx, bookingByIDReadOperation, content...)
	if err != nil {
		return nil, err
	}

	reservations := reservationsFromXML(root)
	if len(reservations) == 0 {
		return nil, nil
	}

	return &reservations[0], nil
}

// BookingReadOneCall reads pending reservations of every hotel of the credentials.
func (c *Client) BookingReadOneCall(ctx context.Context) ([]Reservation, error) {
	root, err := c.execute(ctx, bookingReadOneCallOperation)
	if err != nil {
		return nil, err
	}

	reservations := []Reservation{}
	for _, hotel := range xmltree.List(root, "TReservationRS") {
		reservations = append(reservations, reservationsFromXML(hotel)...)
	}

	return reservations, nil
}

func reservationsFromXML(parent *etree.Element) []Reservation {
	reservations := []Reservation{}
	for _, el := range xmltree.List(parent, "reservation") {
		reservations = append(reservations, reservationFromXML(el))
	}

	return reservations
}

func reservationFromXML(el *etree.Element) Reservation {
	reservation := Reservation{
		HotelID:              xmltree.Child(el, "hotelId").String(),
		PortalID:             xmltree.Child(el, "portalId").String(),
		ID:                   xmltree.Child(el, "id").String(),
		Status:               xmltree.Child(el, "status").String(),
		CreateDateTime:       dateTime(xmltree.Child(el, "createDateTime")),
		CancellationDateTime: dateTime(xmltree.Child(el, "cancellationDateTime")),
		PaymentType:          xmltree.Child(el, "paymentType").String(),
		Remark:               xmltree.Child(el, "remark").String(),
		CurrencyCode:         xmltree.Child(el, "currencyCode").String(),
		LocatorID:            xmltree.Child(el, "locatorId").String(),
		TotalValue:           xmltree.Child(el, "totalValue").Number(),
		TotalAddOns:          xmltree.Child(el, "totalAddOns").Number(),
		CollectType:          xmltree.Child(el, "collectType").String(),
		Guest:                guestFromXML(el.SelectElement("guest"), holderFields...),
		Payment:              paymentFromXML(el.SelectElement("payment")),
		Rooms:                []Room{},
	}

	for _, room := range xmltree.Nested(el, "rooms", "room") {
		reservation.Rooms = append(reservation.Rooms, roomFromXML(room))
	}

	return reservation
}

func roomFromXML(el *etree.Element) Room {
	room := Room{
		ID:            xmltree.Child(el, "id").String(),
		RoomLocatorID: xmltree.Child(el, "roomLocatorId").String(),
		RoomTypeID:    xmltree.Child(el, "roomTypeId").String(),
		Status:        xmltree.Child(el, "status").String(),
		ArrivalDate:   stayDate(xmltree.Child(el, "arrivalDate")),
		DepartureDate: stayDate(xmltree.Child(el, "departureDate")),
		Adults:        xmltree.Child(el, "adults").Number(),
		Children:      xmltree.Child(el, "children").Number(),
		TotalValue:    xmltree.Child(el, "totalValue").Number(),
		MealPlan:      xmltree.Child(el, "mealPlan").String(),
		Remark:        xmltree.Child(el, "remark").String(),
		Guest:         guestFromXML(el.SelectElement("guest")),
	}

	for _, age := range xmltree.Nested(el, "ageChildren", "ageChild") {
		if value := xmltree.NewValue(age.Text()).Number(); value != nil {
			room.AgeChildren = append(room.AgeChildren, *value)
		}
	}

	for _, addon := range xmltree.Nested(el, "addons", "addon") {
		room.Addons = append(room.Addons, Addon{
			Name:       xmltree.Child(addon, "name").String(),
			TotalValue: xmltree.Child(addon, "totalValue").Number(),
		})
	}

	for _, rate := range xmltree.Nested(el, "dailyRates", "dailyRate") {
		room.DailyRates = append(room.DailyRates, DailyRate{
			Date:       stayDate(xmltree.Child(rate, "date")),
			TotalValue: xmltree.Child(rate, "totalValue").Number(),
		})
	}

	return room
}

// guestFromXML keeps only fields when given, every known field otherwise.
func guestFromXML(el *etree.Element, fields ...string) *Guest {
	if el == nil {
		return nil
	}

	picked := xmltree.Pick(el, fields...)

	guest := &Guest{
		FirstName:      xmltree.Child(picked, "firstName").String(),
		LastName:       xmltree.Child(picked, "lastName").String(),
		Email:          xmltree.Child(picked, "email").String(),
		DocumentType:   xmltree.Child(picked, "documentType").String(),
		DocumentNumber: xmltree.Child(picked, "documentNumber").String(),
		Document:       xmltree.Child(picked, "document").String(),
		Phone:          xmltree.Child(picked, "phone").String(),
	}

	if address := picked.SelectElement("address"); address != nil {
		guest.Address = &Address{
			Street:  xmltree.Child(address, "street").String(),
			Zipcode: xmltree.Child(address, "zipcode").String(),
			City:    xmltree.Child(address, "city").String(),
			Country: xmltree.Child(address, "country").String(),
		}
	}

	return guest
}

func paymentFromXML(el *etree.Element) *Payment {
	if el == nil {
		return nil
	}

	picked := xmltree.Pick(el, paymentFields...)

	payment := &Payment{
		CardType:             xmltree.Child(picked, "cardType").String(),
		CardNumber:           xmltree.Child(picked, "cardNumber").String(),
		CardHolderName:       xmltree.Child(picked, "cardHolderName").String(),
		SeriesCode:           xmltree.Child(picked, "seriesCode").String(),
		ExpireDate:           xmltree.Child(picked, "expireDate").String(),
		PrePaymentValue:      xmltree.Child(picked, "prePaymentValue").Number(),
		NumberOfInstallments: xmltree.Child(picked, "numberOfInstallments").Number(),
		InstallmentValue:     xmltree.Child(picked, "installmentValue").Number(),
		AuthorizationCode:    xmltree.Child(picked, "authorizationCode").String(),
	}

	if charged := xmltree.Child(picked, "prePaymentCharged"); charged.Present() {
		value := charged.Bool()
		payment.PrePaymentCharged = &value
	}

	return payment
}
