package repositories

import (
	"context"
	"net/http"

	"weather-report/config"
	"weather-report/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type WeatherRepository interface {
	Name() string
	// FetchCurrent returns the raw body of the current weather document for city.
	FetchCurrent(ctx context.Context, city string) ([]byte, error)
}

// InitWeatherRepository builds the OpenWeatherMap repository with a fresh HTTP client.
func InitWeatherRepository(cfg *config.Config, l *logger.Logger) (WeatherRepository, error) {
	client := &http.Client{
		Timeout: cfg.OpenWeatherMap.Timeout,
	}

	repo, err := NewOpenWeatherMapRepository(cfg.OpenWeatherMap, l, client)
	if err != nil {
		return nil, err
	}

	return repo, nil
}
