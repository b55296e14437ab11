package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var ErrUnsupportedBackend = errors.New("weather backend is not supported")

const (
	BackendAccuWeather  = "accu"
	BackendWunderground = "wund"
)

// Service is the endpoint of a weather backend. Its host also keys the API
// key in the credentials store.
type Service struct {
	Scheme string
	Host   string
}

type Log struct {
	Level string `envconfig:"LOG_LEVEL" default:"warn"`
	Path  string `envconfig:"LOGS_PATH"`
	// HTTPTracePath enables the outbound request trace when set.
	HTTPTracePath string `envconfig:"HTTP_TRACE_PATH"`
}

type Config struct {
	Backend string `envconfig:"WEATHER_BACKEND" default:"accu"`

	AccuWeatherScheme  string `envconfig:"ACCUWEATHER_SCHEME" default:"https"`
	AccuWeatherHost    string `envconfig:"ACCUWEATHER_HOST" default:"dataservice.accuweather.com"`
	WundergroundScheme string `envconfig:"WUNDERGROUND_SCHEME" default:"https"`
	WundergroundHost   string `envconfig:"WUNDERGROUND_HOST" default:"api.wunderground.com"`

	IPInfoURL string `envconfig:"IPINFO_URL" default:"https://ipinfo.io"`

	// NetrcPath overrides the netrc file found in the home directory.
	NetrcPath string `envconfig:"WEATHER_NETRC"`
	// Timeout is in seconds, 0 leaves requests without a deadline.
	Timeout int `envconfig:"WEATHER_TIMEOUT" default:"0"`

	Log Log
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.WeatherService(); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("WEATHER_TIMEOUT must not be negative, got %d", c.Timeout)
	}
	return nil
}

// WeatherService returns the endpoint of the selected backend.
func (c *Config) WeatherService() (Service, error) {
	switch c.Backend {
	case BackendAccuWeather:
		return Service{Scheme: c.AccuWeatherScheme, Host: c.AccuWeatherHost}, nil
	case BackendWunderground:
		return Service{Scheme: c.WundergroundScheme, Host: c.WundergroundHost}, nil
	default:
		return Service{}, fmt.Errorf("%w: %q", ErrUnsupportedBackend, c.Backend)
	}
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
