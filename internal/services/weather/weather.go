package weather

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"weather-report/internal/apperr"
	"weather-report/internal/models"
	"weather-report/internal/repositories"
	"weather-report/pkg/logger"
)

// WeatherService runs fetch, decode and transform for a single city.
type WeatherService struct {
	repo repositories.WeatherRepository
	echo io.Writer
	l    *logger.Logger
}

func NewWeatherService(repo repositories.WeatherRepository, l *logger.Logger) *WeatherService {
	return &WeatherService{
		repo: repo,
		l:    l,
	}
}

// WithEcho makes the service print every raw response body to w before decoding it.
func (s *WeatherService) WithEcho(w io.Writer) *WeatherService {
	s.echo = w
	return s
}

// FetchReport fetches the current weather for city and returns the derived report.
func (s *WeatherService) FetchReport(ctx context.Context, city string) (models.Report, error) {
	s.l.Debug("fetching current weather", map[string]any{"city": city, "repo": s.repo.Name()})

	body, err := s.repo.FetchCurrent(ctx, city)
	if err != nil {
		return models.Report{}, err
	}

	if s.echo != nil {
		if _, err := fmt.Fprintf(s.echo, "Received JSON response: %s\n", body); err != nil {
			return models.Report{}, errors.Wrap(err, "failed to echo response")
		}
	}

	current, err := models.DecodeWeatherReport(body)
	if err != nil {
		s.l.Error(err, map[string]any{"city": city, "bytes": len(body)})
		return models.Report{}, apperr.WithBody(apperr.Decode, err, string(body))
	}

	// OpenWeatherMap never reports 0 K; a zero here means the document had no temperature.
	if current.Main.Temp == 0 {
		s.l.Warning("response has no temperature", map[string]any{"city": city})
		return models.Report{}, apperr.WithBody(apperr.ImplausibleData,
			errors.New("temperature is missing or zero"), string(body))
	}

	report := BuildReport(current)

	s.l.Info("built weather report", map[string]any{
		"city":      report.City,
		"country":   report.Country,
		"celsius":   report.Temperature.Celsius,
		"condition": report.Status,
	})

	return report, nil
}
