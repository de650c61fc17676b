package schema

import (
	"net/http"
	"os"
	"regexp"
	"sync"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/tools/converting"
)

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

type SupplierRequestName string

const (
	PortalRead                 SupplierRequestName = "PortalRead"
	AvailabilityUpdate         SupplierRequestName = "AvailabilityUpdate"
	BookingRead                SupplierRequestName = "BookingRead"
	ConfirmePost               SupplierRequestName = "ConfirmePost"
	PackageRead                SupplierRequestName = "PackageRead"
	RoomRateRead               SupplierRequestName = "RoomRateRead"
	BookingByIDRead            SupplierRequestName = "BookingByIdRead"
	BookingReadOneCall         SupplierRequestName = "BookingReadOneCall"
	BookingConfirmationOneCall SupplierRequestName = "BookingConfirmationOneCall"
	OccupancyRateUpdate        SupplierRequestName = "OccupancyRateUpdate"
)

type RequestContent struct {
	Url     string                 `json:"url"`
	Method  string                 `json:"method"`
	Body    string                 `json:"body"`
	Headers map[string]interface{} `json:"headers"`
}

type ResponseContent struct {
	StatusCode int                    `json:"statusCode"`
	Body       string                 `json:"body"`
	Headers    map[string]interface{} `json:"headers"`
}

type SupplierRequest struct {
	Name            SupplierRequestName `json:"name"`
	StartDateTime   *time.Time          `json:"startDateTime,omitempty"`
	Duration        *int                `json:"duration,omitempty"`
	RequestContent  RequestContent      `json:"requestContent"`
	ResponseContent ResponseContent     `json:"responseContent"`
}

type SupplierRequests []SupplierRequest

var passwordPattern = regexp.MustCompile(`(<password>)[^<]*(</password>)`)

// MaskCredentials hides the password element of an outgoing envelope.
func MaskCredentials(body string) string {
	return passwordPattern.ReplaceAllString(body, "${1}***${2}")
}

type supplierRequestsBucket struct {
	supplierRequests SupplierRequests
	sync.Mutex
}

func NewSupplierRequestsBucket() supplierRequestsBucket {
	return supplierRequestsBucket{
		supplierRequests: []SupplierRequest{},
	}
}

func (r *supplierRequestsBucket) SupplierRequests() *SupplierRequests {
	return &r.supplierRequests
}

func (r *supplierRequestsBucket) AddRequests(requests SupplierRequests) {
	r.Lock()
	r.supplierRequests = append(r.supplierRequests, requests...)
	r.Unlock()
}

func (r *supplierRequestsBucket) FinishedRequest(
	requestType SupplierRequestName,
	startTime time.Time,
	statusCode int,
	method string,
	url string,
	requestBody string,
	requestHeaders http.Header,
	responseBody string,
	responseHeaders http.Header,
) {
	historyRequest := SupplierRequest{
		Name: requestType,
		RequestContent: RequestContent{
			Url:     url,
			Method:  method,
			Body:    MaskCredentials(requestBody),
			Headers: converting.HeadersToMap(requestHeaders),
		},
		ResponseContent: ResponseContent{
			StatusCode: statusCode,
			Body:       responseBody,
			Headers:    converting.HeadersToMap(responseHeaders),
		},
	}

	if os.Getenv("TEST") != "true" {
		duration := int(time.Since(startTime).Milliseconds())
		historyRequest.Duration = &duration
		historyRequest.StartDateTime = &startTime
	}

	r.Lock()
	r.supplierRequests = append(r.supplierRequests, historyRequest)
	r.Unlock()
}
