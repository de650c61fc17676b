package schema

import (
	"sync"
)

type ErrorCode string

const (
	TimeoutError    ErrorCode = "TIMEOUT_ERROR"
	ConnectionError ErrorCode = "CONNECTION_ERROR"
	SupplierError   ErrorCode = "SUPPLIER_ERROR"
	ValidationError ErrorCode = "VALIDATION_ERROR"
)

type ResponseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Code reported by HUnit inside its <errors> collection
	SupplierCode string `json:"supplierCode,omitempty"`
}

type ResponseErrors []ResponseError

type errorsBucket struct {
	errors ResponseErrors
	sync.Mutex
}

func NewErrorsBucket() errorsBucket {
	return errorsBucket{
		errors: []ResponseError{},
	}
}

func (e *errorsBucket) AddErrors(errors []ResponseError) {
	e.Lock()
	e.errors = append(e.errors, errors...)
	e.Unlock()
}

func (e *errorsBucket) AddError(err ResponseError) {
	e.Lock()
	e.errors = append(e.errors, err)
	e.Unlock()
}

func (e *errorsBucket) Errors() *ResponseErrors {
	return &e.errors
}

func NewSupplierError(msg string) ResponseError {
	return ResponseError{
		Code:    SupplierError,
		Message: msg,
	}
}

func NewValidationError(supplierCode string, msg string) ResponseError {
	return ResponseError{
		Code:         ValidationError,
		Message:      msg,
		SupplierCode: supplierCode,
	}
}

func NewTimeoutError(msg string) ResponseError {
	return ResponseError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) ResponseError {
	return ResponseError{
		Code:    ConnectionError,
		Message: msg,
	}
}
