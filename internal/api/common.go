package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "not available" message for values that have not been published yet
func returnUnavailable(c echo.Context, message string) (err error) {
	return c.JSONPretty(http.StatusServiceUnavailable, &Result{
		Name:    "Unavailable",
		Message: message,
	}, indentationChar)
}
