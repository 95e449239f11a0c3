package repositories

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"weather-report/config"
	"weather-report/internal/apperr"
	"weather-report/pkg/logger"
)

const (
	OpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	OpenWeatherMapLang    = "en"
)

type OpenWeatherMapRepository struct {
	BaseURL    string
	APIKey     string
	Lang       string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(cfg config.OpenWeatherMapConfig, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperr.New(apperr.MissingCredential, errors.New("API key cannot be empty"))
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	repo := &OpenWeatherMapRepository{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Lang:       cfg.Lang,
		httpClient: httpClient,
		l:          l,
	}
	if repo.BaseURL == "" {
		repo.BaseURL = OpenWeatherMapBaseURL
	}
	if repo.Lang == "" {
		repo.Lang = OpenWeatherMapLang
	}

	return repo, nil
}

func (o *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

// RequestURL interpolates city, key and language into the endpoint.
func (o *OpenWeatherMapRepository) RequestURL(city string) string {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", o.APIKey)
	values.Set("lang", o.Lang)

	return o.BaseURL + "?" + values.Encode()
}

func (o *OpenWeatherMapRepository) redactedURL(city string) string {
	return strings.Replace(o.RequestURL(city), "appid="+url.QueryEscape(o.APIKey), "appid=REDACTED", 1)
}

// FetchCurrent issues a single GET and returns the body whatever the status code.
func (o *OpenWeatherMapRepository) FetchCurrent(ctx context.Context, city string) ([]byte, error) {
	o.l.Info("making openweathermap API request", map[string]any{
		"city": city,
		"lang": o.Lang,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.RequestURL(city), nil)
	if err != nil {
		return nil, apperr.New(apperr.Network, errors.Wrap(err, "failed to create request"))
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = o.redactedURL(city)
		}
		o.l.Error(err, map[string]any{"repository": o.Name()})
		return nil, apperr.New(apperr.Network, errors.Wrap(err, "failed to do request"))
	}
	defer resp.Body.Close()

	o.l.Info("received openweathermap API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		o.l.Error(err, map[string]any{"repository": o.Name()})
		return nil, apperr.New(apperr.BodyRead, errors.Wrap(err, "failed to read response body"))
	}

	if resp.StatusCode != http.StatusOK {
		o.l.Warning("non-200 response, decoding body anyway", map[string]any{
			"status": resp.StatusCode,
			"bytes":  len(body),
		})
	}

	return body, nil
}
