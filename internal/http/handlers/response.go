// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints. The wire
// contract is deliberately small:
//
//   - Validation and not-found failures return {"error": "<message>"} with a
//     400-class status.
//   - Storage failures return {"error": "<message>"} with 500; the underlying
//     cause is logged server-side, never sent to the client.
//   - Unhandled failures return {"error": "Internal server error",
//     "message": "<detail>"} where detail is suppressed outside development
//     mode (see middleware.Recovery).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boardkit/go-board-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Error is a human-readable description, safe to display to users.
	Error string `json:"error" example:"Message text is required"`
}

// fail aborts the request with the standard error envelope. Server-side
// errors (>= 500) are additionally logged with the request-scoped logger and
// the underlying cause when one is supplied.
func fail(c *gin.Context, status int, msg string, cause error) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Err(cause).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// NotFoundBody is the envelope for unmatched routes: 404 with the offending
// path and method echoed back.
type NotFoundBody struct {
	Error  string `json:"error" example:"Route not found"`
	Path   string `json:"path" example:"/nope"`
	Method string `json:"method" example:"GET"`
}

// NoRoute writes the unmatched-route envelope. Exported for router setup.
func NoRoute(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, NotFoundBody{
		Error:  "Route not found",
		Path:   c.Request.URL.Path,
		Method: c.Request.Method,
	})
}
