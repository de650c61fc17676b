package factory

import (
	"fmt"
	"regexp"
	"sync"

	hubErrors "bitbucket.org/crgw/hunit-hub/internal/hub/errors"
	"bitbucket.org/crgw/hunit-hub/internal/hub/interfaces"
	"bitbucket.org/crgw/hunit-hub/internal/hunit"
)

var hotelIDPattern = regexp.MustCompile(`^[0-9]+$`)

// Factory keeps one client per hotel, all sharing the service credentials.
type Factory struct {
	userName string
	password string
	options  []hunit.OptionFunc
	clients  map[string]*hunit.Client
	sync.Mutex
}

func (f *Factory) client(hotelID string) *hunit.Client {
	f.Lock()
	defer f.Unlock()

	client, ok := f.clients[hotelID]
	if !ok {
		client = hunit.New(hunit.Credentials{
			HotelID:  hotelID,
			UserName: f.userName,
			Password: f.password,
		}, f.options...)

		f.clients[hotelID] = client
	}

	return client
}

func (f *Factory) GetClient(hotelID string) (interfaces.Channel, error) {
	if !hotelIDPattern.MatchString(hotelID) {
		return nil, fmt.Errorf("%w: %q", hubErrors.ErrorInvalidHotel, hotelID)
	}

	return f.client(hotelID), nil
}

// OneCallClient carries no hotel, its operations span every hotel of the credentials.
func (f *Factory) OneCallClient() interfaces.Channel {
	return f.client("")
}

func NewFactory(userName string, password string, options ...hunit.OptionFunc) *Factory {
	return &Factory{
		userName: userName,
		password: password,
		options:  options,
		clients:  make(map[string]*hunit.Client),
	}
}
