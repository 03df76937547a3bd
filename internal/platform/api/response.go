package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every response body carries a top-level status field so clients can branch
// without inspecting HTTP codes.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is a response body under construction.
type Envelope map[string]interface{}

// Success writes a 200 response with status "success" plus the given fields.
func Success(c echo.Context, fields Envelope) error {
	body := Envelope{"status": StatusSuccess}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// Error writes an error envelope with the given HTTP code and message.
func Error(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{
		"status":  StatusError,
		"message": message,
	})
}

// ValidationFailed writes a 422 envelope with a per-field errors map.
func ValidationFailed(c echo.Context, errs map[string]string) error {
	return c.JSON(http.StatusUnprocessableEntity, Envelope{
		"status":  StatusError,
		"message": "Validation failed",
		"errors":  errs,
	})
}
