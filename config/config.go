package config

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"weather-report/internal/apperr"
)

const (
	DefaultConfigFile = "config/config.yaml"
	DefaultDotEnvFile = ".env"

	// ConfigFileEnv overrides the YAML file location.
	ConfigFileEnv = "WEATHER_CONFIG_FILE"
	APIKeyEnv     = "OPENWEATHERMAP_API_KEY"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	LogLevelOff = "off"
)

type Config struct {
	App            AppConfig            `yaml:"app" envconfig:"APP"`
	Log            LogConfig            `yaml:"log" envconfig:"LOG"`
	OpenWeatherMap OpenWeatherMapConfig `yaml:"openweathermap" envconfig:"OPENWEATHERMAP"`
	Report         ReportConfig         `yaml:"report" envconfig:"REPORT"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
	Output string `yaml:"output" split_words:"true"`
}

type OpenWeatherMapConfig struct {
	APIKey  string        `yaml:"api_key,omitempty" split_words:"true"`
	BaseURL string        `yaml:"base_url" split_words:"true"`
	Lang    string        `yaml:"lang" split_words:"true"`
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
}

type ReportConfig struct {
	DefaultCity string `yaml:"default_city" split_words:"true"`
	EchoRaw     bool   `yaml:"echo_raw" split_words:"true"`
	Color       string `yaml:"color" split_words:"true"`
}

// ConfigProvider loads and validates configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, a YAML file, a .env file and the environment.
type FileConfigProvider struct {
	path       string
	dotEnvPath string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{
		path:       path,
		dotEnvPath: DefaultDotEnvFile,
	}
}

// WithDotEnv sets the .env file consulted before the environment is read.
func (p *FileConfigProvider) WithDotEnv(path string) *FileConfigProvider {
	p.dotEnvPath = path
	return p
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-report",
			Version: "1.0.0",
		},
		Log: LogConfig{
			Level:  LogLevelOff,
			Format: "json",
			Output: "stderr",
		},
		OpenWeatherMap: OpenWeatherMapConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
			Lang:    "en",
		},
		Report: ReportConfig{
			DefaultCity: "Kyiv",
			EchoRaw:     true,
			Color:       ColorAuto,
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Defaults()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := p.loadDotEnv(); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, errors.Wrap(err, "error environment variable parsing")
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	if p.path == "" {
		return nil
	}

	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "failed to read config file %s", p.path)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return errors.Wrapf(err, "failed to parse YAML config %s", p.path)
	}

	return nil
}

func (p *FileConfigProvider) loadDotEnv() error {
	if p.dotEnvPath == "" {
		return nil
	}

	if err := godotenv.Load(p.dotEnvPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "failed to load %s", p.dotEnvPath)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	if strings.TrimSpace(config.OpenWeatherMap.APIKey) == "" {
		return apperr.New(apperr.MissingCredential, fmt.Errorf("%s is not set", APIKeyEnv))
	}

	if config.App.Name == "" {
		return errors.New("app.name is required")
	}

	u, err := url.Parse(config.OpenWeatherMap.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("openweathermap.base_url must be an absolute URL, got %q", config.OpenWeatherMap.BaseURL)
	}

	if config.OpenWeatherMap.Timeout < 0 {
		return errors.New("openweathermap.timeout must not be negative")
	}

	switch strings.ToLower(config.Log.Level) {
	case LogLevelOff, "", "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level %q is not supported", config.Log.Level)
	}

	switch config.Log.Format {
	case "json", "console":
	default:
		return errors.Errorf("log.format %q is not supported", config.Log.Format)
	}

	switch config.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("report.color %q is not supported", config.Report.Color)
	}

	return nil
}

// NewConfigWithProvider loads the configuration through provider and validates it.
// A config that fails validation is still returned alongside the error.
func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return cnf, err
	}

	return cnf, nil
}

// NewConfig reads config/config.yaml (or $WEATHER_CONFIG_FILE), .env and the environment.
func NewConfig() (*Config, error) {
	path := DefaultConfigFile
	if p := os.Getenv(ConfigFileEnv); p != "" {
		path = p
	}

	return NewConfigWithProvider(NewFileConfigProvider(path))
}

// City picks the first positional argument, falling back to the configured default.
func (c *Config) City(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.Report.DefaultCity
}

func (c *Config) LogEnabled() bool {
	level := strings.ToLower(c.Log.Level)
	return level != LogLevelOff && level != ""
}
