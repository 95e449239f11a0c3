package models

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// WeatherReport mirrors the OpenWeatherMap current weather document.
// Absent fields decode to their zero values.
type WeatherReport struct {
	Main    Indicators            `json:"main"`
	Weather []ConditionDescriptor `json:"weather"`
	Wind    WindInfo              `json:"wind"`
	Name    string                `json:"name"`
	Sys     LocationMeta          `json:"sys"`
}

type Indicators struct {
	Temp      float64 `json:"temp" example:"300.15"`
	FeelsLike float64 `json:"feels_like" example:"299.0"`
	Humidity  uint8   `json:"humidity" example:"50"`
	Pressure  uint16  `json:"pressure" example:"1012"`
}

type ConditionDescriptor struct {
	Description string `json:"description" example:"clear sky"`
}

type WindInfo struct {
	Speed float64 `json:"speed" example:"3.5"`
}

type LocationMeta struct {
	Country string `json:"country" example:"UA"`
	Sunrise int64  `json:"sunrise" example:"1700000000"`
	Sunset  int64  `json:"sunset" example:"1700040000"`
}

// DecodeWeatherReport parses body, ignoring unknown fields.
func DecodeWeatherReport(body []byte) (WeatherReport, error) {
	var report WeatherReport
	if err := json.Unmarshal(body, &report); err != nil {
		return WeatherReport{}, errors.Wrap(err, "failed to parse JSON response")
	}
	return report, nil
}

// Description returns the first condition descriptor, or fallback when there is none.
func (w WeatherReport) Description(fallback string) string {
	if len(w.Weather) == 0 {
		return fallback
	}
	return w.Weather[0].Description
}
