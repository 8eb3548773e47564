// Package api defines the JSON envelopes shared by all HTTP handlers.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every successful response. Code mirrors the HTTP status.
// Warning is set when the data is degraded, for example after a timeout.
type Envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// OK writes a 200 envelope around data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Code: http.StatusOK, Data: data})
}

// OKWithMessage writes a 200 envelope carrying a human-readable message.
func OKWithMessage(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{Code: http.StatusOK, Data: data, Message: message})
}

// OKWithWarning writes a 200 envelope flagged with warning. An empty warning
// is omitted.
func OKWithWarning(c *gin.Context, data any, warning string) {
	c.JSON(http.StatusOK, Envelope{Code: http.StatusOK, Data: data, Warning: warning})
}

// Fail writes an ErrorResponse with status.
func Fail(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{Code: status, Error: err.Error()})
}
