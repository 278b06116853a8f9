package api

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/humidistat/humidistat/internal/status"
	"github.com/labstack/echo/v4"
)

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
}

type readingJson struct {
	Id      string    `json:"id"`
	Value   *float64  `json:"value"`
	Updated time.Time `json:"updated"`
}

func newReadingJson(reading status.Reading) readingJson {
	return readingJson{
		Id:      reading.Id,
		Value:   nullable(reading.Value),
		Updated: reading.Updated,
	}
}

func getSensors(c echo.Context) error {
	items := status.Readings.Items()
	data := make([]readingJson, 0, len(items))
	for _, reading := range items {
		data = append(data, newReadingJson(reading))
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i].Id < data[j].Id
	})
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	data, exists := status.Readings.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, newReadingJson(data), indentationChar)
}

func nullable(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}
