package testutils

import (
	"net/url"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"weather-report/pkg/httpserver"
)

const (
	WeatherPath = "/data/2.5/weather"

	// KyivDocument is a minimal successful current weather response.
	KyivDocument = `{"main":{"temp":300.15,"feels_like":299.0,"humidity":50,"pressure":1012},"weather":[{"description":"clear sky"}],"wind":{"speed":3.5},"name":"Kyiv","sys":{"country":"UA","sunrise":1700000000,"sunset":1700040000}}`
)

// OpenWeatherMapStub is a fake current weather endpoint that answers every request with
// the same status and body.
type OpenWeatherMapStub struct {
	URL string

	mu       sync.Mutex
	requests []url.Values
}

func NewOpenWeatherMapStub(t testing.TB, status int, body string) *OpenWeatherMapStub {
	t.Helper()

	stub := &OpenWeatherMapStub{}

	app := httpserver.InitFiberServer("openweathermap-stub")
	app.Get(WeatherPath, func(c *fiber.Ctx) error {
		query := url.Values{}
		c.Context().QueryArgs().VisitAll(func(key, value []byte) {
			query.Add(string(key), string(value))
		})

		stub.mu.Lock()
		stub.requests = append(stub.requests, query)
		stub.mu.Unlock()

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(status).SendString(body)
	})

	baseURL, err := httpserver.ServeLocal(app)
	if err != nil {
		t.Fatalf("cannot start openweathermap stub: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown() })

	stub.URL = baseURL + WeatherPath

	return stub
}

// Requests returns the query parameters of every request received so far.
func (s *OpenWeatherMapStub) Requests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]url.Values, len(s.requests))
	copy(out, s.requests)
	return out
}
