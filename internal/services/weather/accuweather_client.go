package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/console-weather/internal/models"
)

const (
	accuPostalSearchPath = "/locations/v1/postalcodes/search"
	accuIPAddressPath    = "/locations/v1/cities/ipaddress"
	accuConditionsPath   = "/currentconditions/v1/"
)

// ClientAccuWeather talks to the AccuWeather data service.
type ClientAccuWeather struct {
	APIKey  string
	host    string
	baseURL string
	client  HTTPClient
	logger  zerolog.Logger
}

// NewClientAccuWeather constructs a new AccuWeather client.
func NewClientAccuWeather(opts Options) *ClientAccuWeather {
	return &ClientAccuWeather{
		APIKey:  opts.APIKey,
		host:    opts.Host,
		baseURL: opts.baseURL(),
		client:  opts.HTTPClient,
		logger:  opts.Logger,
	}
}

func (s *ClientAccuWeather) provider() {}

func (s *ClientAccuWeather) Host() string {
	return s.host
}

func (s *ClientAccuWeather) ResolveLocation(ctx context.Context, q Query) (models.Location, error) {
	switch {
	case q.Postal != "":
		return s.CityByPostal(ctx, q.Postal)
	case q.IP != "":
		return s.CityByIP(ctx, q.IP)
	default:
		return models.Location{}, ErrEmptyQuery
	}
}

func (s *ClientAccuWeather) FetchConditions(
	ctx context.Context,
	loc models.Location,
	details bool,
) (models.Conditions, error) {
	return s.CurrentConditions(ctx, loc.Key, details)
}

// CityByPostal returns the first candidate whose primary postal code is
// exactly postal.
func (s *ClientAccuWeather) CityByPostal(ctx context.Context, postal string) (models.Location, error) {
	start := time.Now()
	params := s.params()
	params.Set("q", postal)

	body, err := get(ctx, s.client, s.logger, accuPostalSearchPath, s.url(accuPostalSearchPath, params))
	if err != nil {
		return models.Location{}, err
	}

	var candidates []models.Location
	if err := json.Unmarshal(body, &candidates); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("postal", postal).
			Msg("failed to decode postal code search response")
		return models.Location{}, fmt.Errorf("decode postal code search response: %w", err)
	}

	for _, c := range candidates {
		if c.PrimaryPostalCode == postal {
			s.logger.Info().
				Ctx(ctx).
				Str("postal", postal).
				Str("key", c.Key).
				Int("candidates", len(candidates)).
				Dur("duration_ms", time.Since(start)).
				Msg("resolved location by postal code")
			return c, nil
		}
	}

	s.logger.Warn().
		Ctx(ctx).
		Str("postal", postal).
		Int("candidates", len(candidates)).
		Msg("no candidate matches postal code")
	return models.Location{}, &NotFoundError{Query: postal}
}

// CityByIP returns the location the service associates with ip, as is.
func (s *ClientAccuWeather) CityByIP(ctx context.Context, ip string) (models.Location, error) {
	start := time.Now()
	params := s.params()
	params.Set("q", ip)

	body, err := get(ctx, s.client, s.logger, accuIPAddressPath, s.url(accuIPAddressPath, params))
	if err != nil {
		return models.Location{}, err
	}

	var loc models.Location
	if err := json.Unmarshal(body, &loc); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("ip", ip).
			Msg("failed to decode IP address lookup response")
		return models.Location{}, fmt.Errorf("decode IP address lookup response: %w", err)
	}

	s.logger.Info().
		Ctx(ctx).
		Str("ip", ip).
		Str("key", loc.Key).
		Dur("duration_ms", time.Since(start)).
		Msg("resolved location by IP address")

	return loc, nil
}

func (s *ClientAccuWeather) CurrentConditions(
	ctx context.Context,
	locationKey string,
	details bool,
) (models.Conditions, error) {
	if locationKey == "" {
		return nil, ErrMissingLocationKey
	}
	start := time.Now()
	params := s.params()
	params.Set("details", strconv.FormatBool(details))

	path := accuConditionsPath + url.PathEscape(locationKey)
	body, err := get(ctx, s.client, s.logger, accuConditionsPath, s.url(path, params))
	if err != nil {
		return nil, err
	}

	var conds models.Conditions
	if err := json.Unmarshal(body, &conds); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("key", locationKey).
			Msg("failed to decode current conditions response")
		return nil, fmt.Errorf("decode current conditions response: %w", err)
	}

	s.logger.Info().
		Ctx(ctx).
		Str("key", locationKey).
		Bool("details", details).
		Int("records", len(conds)).
		Dur("duration_ms", time.Since(start)).
		Msg("fetched current conditions")

	return conds, nil
}

func (s *ClientAccuWeather) params() url.Values {
	return url.Values{"apikey": []string{s.APIKey}}
}

func (s *ClientAccuWeather) url(path string, params url.Values) string {
	return s.baseURL + path + "?" + params.Encode()
}
