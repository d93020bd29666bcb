// Package errors contains helper functions and types to work with errors
package errors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	// CategoryNoError is used when a call completed without error.
	CategoryNoError Category = iota
	// CategoryDataError The client sends some invalid data in the request,
	// for example, missing or incorrect content in the payload or parameters.
	CategoryDataError
	// CategoryUnauthorized The client did not prove it controls the key it acts for
	CategoryUnauthorized
	// CategoryForbidden The client is not allowed to perform the request
	CategoryForbidden
	// CategoryResourceNotFound The client is attempting to access a resource that does not exist
	CategoryResourceNotFound
	// CategoryNotSupported The requested functionality is not supported or disabled
	CategoryNotSupported
	// CategoryDataConflict The request conflicts with state that already exists
	CategoryDataConflict
	// CategoryPaymentRequired The paying account cannot cover the cost of the request
	CategoryPaymentRequired
	// CategoryDependencyFailure A dependent service is throwing errors
	CategoryDependencyFailure
	// CategoryGeneralError The service failed in an unexpected way
	CategoryGeneralError
	// CategoryRecovering The service is failing but is expected to recover
	CategoryRecovering
)

var categoryNames = map[Category]string{
	CategoryNoError:           "CategoryNoError",
	CategoryDataError:         "CategoryDataError",
	CategoryUnauthorized:      "CategoryUnauthorized",
	CategoryForbidden:         "CategoryForbidden",
	CategoryResourceNotFound:  "CategoryResourceNotFound",
	CategoryNotSupported:      "CategoryNotSupported",
	CategoryDataConflict:      "CategoryDataConflict",
	CategoryPaymentRequired:   "CategoryPaymentRequired",
	CategoryDependencyFailure: "CategoryDependencyFailure",
	CategoryGeneralError:      "CategoryGeneralError",
	CategoryRecovering:        "CategoryRecovering",
}

var categoryStatus = map[Category]int{
	CategoryNoError:           http.StatusOK,
	CategoryDataError:         http.StatusBadRequest,
	CategoryUnauthorized:      http.StatusUnauthorized,
	CategoryForbidden:         http.StatusForbidden,
	CategoryResourceNotFound:  http.StatusNotFound,
	CategoryNotSupported:      http.StatusMethodNotAllowed,
	CategoryDataConflict:      http.StatusConflict,
	CategoryPaymentRequired:   http.StatusPaymentRequired,
	CategoryDependencyFailure: http.StatusBadGateway,
	CategoryGeneralError:      http.StatusInternalServerError,
	CategoryRecovering:        http.StatusServiceUnavailable,
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "CategoryGeneralError"
}

// ServiceError is the error type returned across service boundaries.
// Message is safe to show to callers; Err is only logged.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	if code, ok := categoryStatus[err.Category]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

// IsInternalError reports whether err should be treated as a server side failure.
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category < CategoryDependencyFailure {
		return false
	}
	return true
}

func newServiceError(cat Category, err error, fallback, message string) error {
	if err == nil {
		err = errors.New(fallback)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError returns a general service error. Callers see "Internal Server Error".
func GeneralError(err error) error {
	return newServiceError(CategoryGeneralError, err, "internal server error", "Internal Server Error")
}

// ResourceNotFoundError returns an error with category ResourceNotFound
func ResourceNotFoundError(err error, message string) error {
	return newServiceError(CategoryResourceNotFound, err, "resource not found: "+message, message)
}

// BadRequestError returns an error with category DataError
func BadRequestError(err error, message string) error {
	return newServiceError(CategoryDataError, err, "bad request: "+message, message)
}

// NotSupportedError returns an error with category NotSupported
func NotSupportedError(err error, message string) error {
	return newServiceError(CategoryNotSupported, err, "not supported: "+message, message)
}

// ForbiddenError returns an error with category Forbidden
func ForbiddenError(err error, message string) error {
	return newServiceError(CategoryForbidden, err, "request forbidden", message)
}

// UnAuthorizedError returns an error with category Unauthorized
func UnAuthorizedError(err error, message string) error {
	return newServiceError(CategoryUnauthorized, err, "unauthorized", message)
}

// ConflictError returns an error with category DataConflict
func ConflictError(err error, message string) error {
	return newServiceError(CategoryDataConflict, err, "conflict", message)
}

// PaymentRequiredError returns an error with category PaymentRequired
func PaymentRequiredError(err error, message string) error {
	return newServiceError(CategoryPaymentRequired, err, "payment required", message)
}
