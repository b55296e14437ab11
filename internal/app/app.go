package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/console-weather/internal/config"
	"github.com/Nazarious-ucu/console-weather/internal/credentials"
	"github.com/Nazarious-ucu/console-weather/internal/render"
	"github.com/Nazarious-ucu/console-weather/internal/services/ipinfo"
	"github.com/Nazarious-ucu/console-weather/internal/services/logger"
	"github.com/Nazarious-ucu/console-weather/internal/services/weather"
	pkglogger "github.com/Nazarious-ucu/console-weather/pkg/logger"
)

type App struct {
	cfg    config.Config
	log    zerolog.Logger
	getenv func(string) string
}

type ServiceContainer struct {
	Resolver *Resolver

	traceLogger *zap.Logger
}

func New(cfg config.Config, logger zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		log:    logger,
		getenv: os.Getenv,
	}
}

// Init reads the API key and wires the clients for the configured backend.
func (a *App) Init() (ServiceContainer, error) {
	svc, err := a.cfg.WeatherService()
	if err != nil {
		return ServiceContainer{}, err
	}

	apiKey, err := a.apiKey(svc.Host)
	if err != nil {
		return ServiceContainer{}, err
	}

	var sc ServiceContainer
	httpClient := &http.Client{}
	if a.cfg.Log.HTTPTracePath != "" {
		sc.traceLogger, err = pkglogger.NewFileLogger(a.cfg.Log.HTTPTracePath)
		if err != nil {
			return ServiceContainer{}, fmt.Errorf("failed to create HTTP trace logger: %w", err)
		}
		httpClient.Transport = logger.NewRoundTripper(sc.traceLogger, apiKey)
	}

	provider, err := weather.New(a.cfg.Backend, weather.Options{
		Scheme:     svc.Scheme,
		Host:       svc.Host,
		APIKey:     apiKey,
		HTTPClient: httpClient,
		Logger:     a.log.With().Str("backend", a.cfg.Backend).Logger(),
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	locator := ipinfo.NewClient(a.cfg.IPInfoURL, httpClient, a.log)
	sink := render.DetectSink(a.getenv)

	a.log.Debug().
		Str("backend", a.cfg.Backend).
		Str("host", provider.Host()).
		Bool("glyphs", sink.SupportsGlyphs).
		Msg("application initialized")

	sc.Resolver = NewResolver(provider, locator, sink, a.log)
	return sc, nil
}

func (a *App) Run(ctx context.Context, sc ServiceContainer, opts Options) (string, error) {
	if timeout := a.cfg.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return sc.Resolver.Run(ctx, opts)
}

func (a *App) Stop(sc ServiceContainer) error {
	if sc.traceLogger == nil {
		return nil
	}
	return sc.traceLogger.Sync()
}

func (a *App) apiKey(host string) (string, error) {
	path := a.cfg.NetrcPath
	if path == "" {
		home, err := credentials.HomeDir(a.getenv)
		if err != nil {
			return "", err
		}
		path = credentials.NetrcPath(home, runtime.GOOS)
	}

	store, err := credentials.Load(path)
	if err != nil {
		return "", err
	}
	return store.APIKey(host)
}
