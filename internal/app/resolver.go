package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/console-weather/internal/models"
	"github.com/Nazarious-ucu/console-weather/internal/render"
	"github.com/Nazarious-ucu/console-weather/internal/services/weather"
)

type ipLocator interface {
	External(ctx context.Context, ip string) (models.IPInfo, error)
}

type weatherProvider interface {
	ResolveLocation(ctx context.Context, q weather.Query) (models.Location, error)
	FetchConditions(ctx context.Context, loc models.Location, details bool) (models.Conditions, error)
}

type Options struct {
	// Postal skips the IP service and resolves this postal code directly.
	Postal string
	// UseIP resolves by the caller's IP instead of the IP service's postal code.
	UseIP bool
	// IP is handed to the IP service instead of asking about the caller.
	IP      string
	Details bool
	NoIcons bool
}

// Resolver turns Options into a printable weather line: location first,
// then current conditions for its key, then the rendered sentence.
type Resolver struct {
	provider weatherProvider
	locator  ipLocator
	sink     render.Sink
	logger   zerolog.Logger
}

func NewResolver(provider weatherProvider, locator ipLocator, sink render.Sink, logger zerolog.Logger) *Resolver {
	return &Resolver{provider: provider, locator: locator, sink: sink, logger: logger}
}

func (r *Resolver) Run(ctx context.Context, opts Options) (string, error) {
	loc, postal, err := r.locate(ctx, opts)
	if err != nil {
		return "", err
	}

	city, state := loc.EnglishName, loc.AdministrativeArea.ID

	conds, err := r.provider.FetchConditions(ctx, loc, opts.Details)
	if err != nil {
		return "", fmt.Errorf("fetch current conditions: %w", err)
	}

	line, err := r.sink.Render(city, state, postal, conds, opts.NoIcons)
	if err != nil {
		return "", err
	}

	r.logger.Debug().
		Ctx(ctx).
		Str("key", loc.Key).
		Bool("glyphs", r.sink.SupportsGlyphs && !opts.NoIcons).
		Msg("rendered weather")

	return line, nil
}

// locate resolves the location and the postal code to print with it.
func (r *Resolver) locate(ctx context.Context, opts Options) (models.Location, string, error) {
	if opts.Postal != "" {
		r.logger.Info().
			Ctx(ctx).
			Str("postal", opts.Postal).
			Msg("resolving explicit postal code")
		loc, err := r.provider.ResolveLocation(ctx, weather.Query{Postal: opts.Postal})
		if err != nil {
			return models.Location{}, "", fmt.Errorf("resolve postal code %s: %w", opts.Postal, err)
		}
		return loc, opts.Postal, nil
	}

	info, err := r.locator.External(ctx, opts.IP)
	if err != nil {
		return models.Location{}, "", fmt.Errorf("get external IP: %w", err)
	}

	q := weather.Query{Postal: info.Postal}
	if opts.UseIP {
		q = weather.Query{IP: info.IP}
	}

	r.logger.Info().
		Ctx(ctx).
		Str("ip", info.IP).
		Str("postal", q.Postal).
		Bool("use_ip", opts.UseIP).
		Msg("resolving location from IP info")

	loc, err := r.provider.ResolveLocation(ctx, q)
	if err != nil {
		return models.Location{}, "", fmt.Errorf("resolve location: %w", err)
	}
	return loc, loc.PrimaryPostalCode, nil
}
