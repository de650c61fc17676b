package requesting

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"bitbucket.org/crgw/hunit-hub/internal/schema"
)

// TransportError is a failure to get a successful HTTP answer from the supplier.
type TransportError struct {
	Code       schema.ErrorCode
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) ResponseError() schema.ResponseError {
	return schema.ResponseError{
		Code:    e.Code,
		Message: e.Error(),
	}
}

func isValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

func RequestErrors(response *http.Response, err error) (*http.Response, error) {
	if err != nil {
		if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &TransportError{Code: schema.TimeoutError, Err: err}
		}

		return nil, &TransportError{Code: schema.ConnectionError, Err: err}
	}

	if !isValidResponse(response.StatusCode) {
		response.Body.Close()

		return nil, &TransportError{
			Code:       schema.SupplierError,
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("supplier returned status code %d", response.StatusCode),
		}
	}

	return response, nil
}
