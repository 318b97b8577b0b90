// Package response renders the API's success and error envelopes.
package response

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code      string `json:"code"`                // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message   string `json:"message"`             // User-friendly error message
	Details   any    `json:"details,omitempty"`   // Additional error context (only for 4xx errors)
	Retryable bool   `json:"retryable,omitempty"` // The same request may succeed later
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// NoContent returns 204 without a body.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error returns an error response. Details are dropped for 5xx and for
// authentication or authorization failures.
func Error(c echo.Context, statusCode int, info ErrorInfo) error {
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		info.Details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &info,
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, ErrorInfo{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error, please try again later",
	})
}
