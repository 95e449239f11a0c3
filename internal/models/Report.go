package models

// Temperature holds one reading in both display units.
type Temperature struct {
	Celsius    float64
	Fahrenheit float64
}

// Report is the rendered view of a WeatherReport.
type Report struct {
	City      string
	Country   string
	Status    string
	Pictogram string

	Temperature Temperature
	FeelsLike   Temperature

	Humidity  uint8
	WindSpeed float64
	Pressure  uint16

	Sunrise string
	Sunset  string
}
