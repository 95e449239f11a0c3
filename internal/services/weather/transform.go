package weather

import (
	"strings"
	"time"

	"weather-report/internal/models"
)

const (
	absoluteZeroCelsius = 273.15

	UnknownDescription = "Unknown"
	FallbackPictogram  = "🌈"
	clockLayout        = "15:04"
)

// Checked in order, first substring match wins: "light rain and clouds" is a cloud.
var pictograms = []struct {
	keyword   string
	pictogram string
}{
	{"clear", "☀️"},
	{"cloud", "☁️"},
	{"rain", "🌧️"},
	{"thunderstorm", "⛈️"},
	{"snow", "❄️"},
	{"fog", "🌫️"},
}

// Range of instants FormatClock renders; anything else becomes the epoch.
var (
	minClockUnix = time.Date(-262143, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxClockUnix = time.Date(262142, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

func KelvinToCelsius(kelvin float64) float64 {
	return kelvin - absoluteZeroCelsius
}

func CelsiusToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

func ConvertTemperature(kelvin float64) models.Temperature {
	celsius := KelvinToCelsius(kelvin)
	return models.Temperature{
		Celsius:    celsius,
		Fahrenheit: CelsiusToFahrenheit(celsius),
	}
}

// Pictogram maps a free-text condition to an emoji.
func Pictogram(description string) string {
	description = strings.ToLower(description)
	for _, p := range pictograms {
		if strings.Contains(description, p.keyword) {
			return p.pictogram
		}
	}
	return FallbackPictogram
}

// FormatClock renders epoch seconds as a UTC HH:MM string.
func FormatClock(epochSeconds int64) string {
	if epochSeconds < minClockUnix || epochSeconds > maxClockUnix {
		epochSeconds = 0
	}
	return time.Unix(epochSeconds, 0).UTC().Format(clockLayout)
}

// BuildReport derives the printable report from a decoded document.
func BuildReport(w models.WeatherReport) models.Report {
	description := w.Description(UnknownDescription)

	return models.Report{
		City:        w.Name,
		Country:     w.Sys.Country,
		Status:      description,
		Pictogram:   Pictogram(description),
		Temperature: ConvertTemperature(w.Main.Temp),
		FeelsLike:   ConvertTemperature(w.Main.FeelsLike),
		Humidity:    w.Main.Humidity,
		WindSpeed:   w.Wind.Speed,
		Pressure:    w.Main.Pressure,
		Sunrise:     FormatClock(w.Sys.Sunrise),
		Sunset:      FormatClock(w.Sys.Sunset),
	}
}
