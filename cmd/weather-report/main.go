package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"weather-report/internal/app"
)

// weather-report [city]
//
// Prints the current weather for city (default Kyiv) using the OpenWeatherMap API.
// The API key is read from OPENWEATHERMAP_API_KEY.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := app.Main(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
