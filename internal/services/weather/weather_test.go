package weather_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-report/internal/apperr"
	"weather-report/internal/services/weather"
	"weather-report/internal/testutils"
	"weather-report/pkg/logger"
)

// MockRepository implements WeatherRepository for testing
type MockRepository struct {
	body      string
	err       error
	cities    []string
	callCount int
}

func (m *MockRepository) Name() string {
	return "mock"
}

func (m *MockRepository) FetchCurrent(ctx context.Context, city string) ([]byte, error) {
	m.callCount++
	m.cities = append(m.cities, city)

	if m.err != nil {
		return nil, m.err
	}

	return []byte(m.body), nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestNewWeatherService(t *testing.T) {
	service := weather.NewWeatherService(&MockRepository{}, logger.NewNop("test-app"))

	assert.NotNil(t, service)
}

func TestWeatherService_FetchReport_Success(t *testing.T) {
	repo := &MockRepository{body: testutils.KyivDocument}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app"))

	report, err := service.FetchReport(context.Background(), "Kyiv")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.callCount)
	assert.Equal(t, []string{"Kyiv"}, repo.cities)
	assert.Equal(t, "Kyiv", report.City)
	assert.Equal(t, "UA", report.Country)
	assert.Equal(t, "☀️", report.Pictogram)
	assert.InDelta(t, 27.0, report.Temperature.Celsius, 1e-9)
}

func TestWeatherService_FetchReport_EchoesRawBody(t *testing.T) {
	var echo bytes.Buffer
	repo := &MockRepository{body: testutils.KyivDocument}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app")).WithEcho(&echo)

	_, err := service.FetchReport(context.Background(), "Kyiv")
	require.NoError(t, err)
	assert.Equal(t, "Received JSON response: "+testutils.KyivDocument+"\n", echo.String())
}

func TestWeatherService_FetchReport_EchoHappensBeforeDecode(t *testing.T) {
	var echo bytes.Buffer
	repo := &MockRepository{body: "invalid json"}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app")).WithEcho(&echo)

	_, err := service.FetchReport(context.Background(), "Kyiv")
	require.Error(t, err)
	assert.Equal(t, "Received JSON response: invalid json\n", echo.String())
}

func TestWeatherService_FetchReport_EchoFailure(t *testing.T) {
	repo := &MockRepository{body: testutils.KyivDocument}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app")).WithEcho(failingWriter{})

	_, err := service.FetchReport(context.Background(), "Kyiv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, apperr.Unknown, apperr.KindOf(err))
}

func TestWeatherService_FetchReport_RepositoryError(t *testing.T) {
	cause := apperr.New(apperr.Network, errors.New("connection refused"))
	repo := &MockRepository{err: cause}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app"))

	_, err := service.FetchReport(context.Background(), "Kyiv")
	require.Error(t, err)
	assert.Equal(t, apperr.Network, apperr.KindOf(err))
}

func TestWeatherService_FetchReport_DecodeError(t *testing.T) {
	repo := &MockRepository{body: `{"main":`}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app"))

	_, err := service.FetchReport(context.Background(), "Kyiv")
	require.Error(t, err)

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Decode, e.Kind)
	assert.Equal(t, `{"main":`, e.Body)
}

func TestWeatherService_FetchReport_ZeroTemperature(t *testing.T) {
	repo := &MockRepository{body: `{"main":{"temp":0,"feels_like":299.0,"humidity":50,"pressure":1012},"weather":[{"description":"clear sky"}],"wind":{"speed":3.5},"name":"Kyiv","sys":{"country":"UA","sunrise":1700000000,"sunset":1700040000}}`}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app"))

	_, err := service.FetchReport(context.Background(), "Kyiv")
	require.Error(t, err)
	assert.Equal(t, apperr.ImplausibleData, apperr.KindOf(err))
}

func TestWeatherService_FetchReport_ErrorDocument(t *testing.T) {
	// what OpenWeatherMap answers for an unknown city or a bad key
	repo := &MockRepository{body: `{"cod":"404","message":"city not found"}`}
	service := weather.NewWeatherService(repo, logger.NewNop("test-app"))

	_, err := service.FetchReport(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Equal(t, apperr.ImplausibleData, apperr.KindOf(err))
}

func TestWeatherService_FetchReport_LogsWithLogger(t *testing.T) {
	var logs bytes.Buffer
	repo := &MockRepository{body: testutils.KyivDocument}
	service := weather.NewWeatherService(repo, logger.NewZapLogger("test-app", &logs))

	_, err := service.FetchReport(context.Background(), "Kyiv")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "built weather report")
}
