package app

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"

	"weather-report/config"
	"weather-report/internal/controllers/terminal"
	"weather-report/internal/repositories"
	"weather-report/internal/services/weather"
	"weather-report/pkg/logger"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

// App runs the report pipeline once for a city.
type App struct {
	service  *weather.WeatherService
	renderer *terminal.Renderer
	l        *logger.Logger
}

func New(cfg *config.Config, l *logger.Logger, stdout io.Writer, colored bool) (*App, error) {
	repo, err := repositories.InitWeatherRepository(cfg, l)
	if err != nil {
		return nil, err
	}

	service := weather.NewWeatherService(repo, l)
	if cfg.Report.EchoRaw {
		service.WithEcho(stdout)
	}

	return &App{
		service:  service,
		renderer: terminal.NewRenderer(stdout, colored),
		l:        l,
	}, nil
}

func (a *App) Run(ctx context.Context, city string) error {
	report, err := a.service.FetchReport(ctx, city)
	if err != nil {
		return err
	}

	return a.renderer.Render(report)
}

// Main loads configuration, runs the pipeline and reports any failure on stderr.
// It returns the process exit code.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cnf, err := config.NewConfig()
	if err != nil {
		terminal.WriteDiagnostic(stderr, err)
		return ExitFailure
	}

	l, closeLog, err := newLogger(cnf, stdout, stderr)
	if err != nil {
		terminal.WriteDiagnostic(stderr, err)
		return ExitFailure
	}
	defer closeLog()

	colored := terminal.ColorEnabled(cnf.Report.Color, stdout)
	if f, ok := stdout.(*os.File); ok {
		stdout = colorable.NewColorable(f)
	}

	a, err := New(cnf, l, stdout, colored)
	if err != nil {
		terminal.WriteDiagnostic(stderr, err)
		return ExitFailure
	}

	city := cnf.City(args)
	l.Info("application started", map[string]any{
		"version": cnf.App.Version,
		"city":    city,
	})

	if err := a.Run(ctx, city); err != nil {
		l.Error(err, map[string]any{"city": city})
		terminal.WriteDiagnostic(stderr, err)
		return ExitFailure
	}

	return ExitOK
}

func newLogger(cnf *config.Config, stdout, stderr io.Writer) (*logger.Logger, func(), error) {
	if !cnf.LogEnabled() {
		l := logger.NewNop(cnf.App.Name)
		return l, func() {}, nil
	}

	opts := logger.Options{Level: cnf.Log.Level, Format: cnf.Log.Format}

	switch cnf.Log.Output {
	case "", "stderr":
		l := logger.New(cnf.App.Name, opts, stderr)
		return l, func() { _ = l.Stop() }, nil
	case "stdout":
		l := logger.New(cnf.App.Name, opts, stdout)
		return l, func() { _ = l.Stop() }, nil
	}

	f, err := os.OpenFile(cnf.Log.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot open log file %s", cnf.Log.Output)
	}

	l := logger.New(cnf.App.Name, opts, f)
	return l, func() {
		_ = l.Stop()
		_ = f.Close()
	}, nil
}
