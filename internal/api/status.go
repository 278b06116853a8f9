package api

import (
	"net/http"

	"github.com/humidistat/humidistat/internal/status"
	"github.com/labstack/echo/v4"
)

func registerStatusEndpoints(rest *echo.Echo) {
	rest.GET("/status/", getStatus)
}

func getStatus(c echo.Context) error {
	data, ok := status.Current()
	if !ok {
		return returnUnavailable(c, "No status has been published yet")
	}
	return c.JSONPretty(http.StatusOK, newStatusResponse(data), indentationChar)
}

// NaN can not be encoded as JSON, unavailable readings are reported as null
type statusResponse struct {
	status.Status
	Humidity        *float64   `json:"humidity"`
	Temperature     *float64   `json:"temperature"`
	AverageHumidity *float64   `json:"averageHumidity"`
	Inner           []loopJson `json:"inner,omitempty"`
	Thermistors     []*float64 `json:"thermistors,omitempty"`
}

type loopJson struct {
	status.LoopStatus
	ProcessVariable *float64 `json:"processVariable"`
}

func newStatusResponse(s status.Status) statusResponse {
	response := statusResponse{
		Status:          s,
		Humidity:        nullable(s.Humidity),
		Temperature:     nullable(s.Temperature),
		AverageHumidity: nullable(s.AverageHumidity),
	}
	for _, inner := range s.Inner {
		response.Inner = append(response.Inner, loopJson{
			LoopStatus:      inner,
			ProcessVariable: nullable(inner.ProcessVariable),
		})
	}
	for _, thermistor := range s.Thermistors {
		response.Thermistors = append(response.Thermistors, nullable(thermistor))
	}
	return response
}
