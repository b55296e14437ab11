package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/console-weather/internal/models"
)

const (
	wundAutoIP     = "autoip"
	wundNoPostal   = "00000"
	wundNotFound   = "querynotfound"
	wundMetricUnit = "C"
)

// wundIcons maps Weather Underground icon names onto the AccuWeather icon
// index so both backends share one glyph table.
var wundIcons = map[string]int{
	"clear":         1,
	"sunny":         1,
	"mostlysunny":   2,
	"partlysunny":   3,
	"partlycloudy":  4,
	"hazy":          5,
	"mostlycloudy":  6,
	"cloudy":        7,
	"fog":           11,
	"chancerain":    14,
	"tstorms":       15,
	"chancetstorms": 17,
	"rain":          18,
}

type wundResponse struct {
	Response struct {
		Error *struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"response"`
	CurrentObservation *struct {
		DisplayLocation struct {
			City      string `json:"city"`
			State     string `json:"state"`
			Zip       string `json:"zip"`
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"display_location"`
		Weather string  `json:"weather"`
		TempC   float64 `json:"temp_c"`
		Icon    string  `json:"icon"`
	} `json:"current_observation"`
}

// ClientWunderground talks to the Weather Underground conditions API. That
// API has a single endpoint, so location and conditions come from the same
// call. The location key is the zip code, or "lat,lon" outside the US.
type ClientWunderground struct {
	APIKey  string
	host    string
	baseURL string
	client  HTTPClient
	logger  zerolog.Logger
}

// NewClientWunderground constructs a new Weather Underground client.
func NewClientWunderground(opts Options) *ClientWunderground {
	return &ClientWunderground{
		APIKey:  opts.APIKey,
		host:    opts.Host,
		baseURL: opts.baseURL(),
		client:  opts.HTTPClient,
		logger:  opts.Logger,
	}
}

func (s *ClientWunderground) provider() {}

func (s *ClientWunderground) Host() string {
	return s.host
}

func (s *ClientWunderground) ResolveLocation(ctx context.Context, q Query) (models.Location, error) {
	var (
		query  string
		params url.Values
	)
	switch {
	case q.Postal != "":
		query = q.Postal
	case q.IP != "":
		query = wundAutoIP
		params = url.Values{"geo_ip": []string{q.IP}}
	default:
		return models.Location{}, ErrEmptyQuery
	}

	raw, err := s.conditions(ctx, query, params)
	if err != nil {
		return models.Location{}, err
	}

	dl := raw.CurrentObservation.DisplayLocation
	if q.Postal != "" && dl.Zip != q.Postal {
		return models.Location{}, &NotFoundError{Query: q.Postal}
	}

	key := dl.Zip
	if key == "" || key == wundNoPostal {
		key = dl.Latitude + "," + dl.Longitude
	}

	loc := models.Location{
		Key:                key,
		EnglishName:        dl.City,
		AdministrativeArea: models.AdministrativeArea{ID: dl.State},
		PrimaryPostalCode:  dl.Zip,
	}

	s.logger.Info().
		Ctx(ctx).
		Str("query", query).
		Str("key", loc.Key).
		Msg("resolved location")

	return loc, nil
}

// FetchConditions ignores details: the endpoint always answers in full.
func (s *ClientWunderground) FetchConditions(
	ctx context.Context,
	loc models.Location,
	_ bool,
) (models.Conditions, error) {
	if loc.Key == "" {
		return nil, ErrMissingLocationKey
	}

	raw, err := s.conditions(ctx, loc.Key, nil)
	if err != nil {
		return nil, err
	}

	obs := raw.CurrentObservation
	return models.Conditions{{
		WeatherIcon: wundIcon(obs.Icon),
		WeatherText: obs.Weather,
		Temperature: models.Temperature{
			Metric: models.Measurement{Value: obs.TempC, Unit: wundMetricUnit},
		},
	}}, nil
}

func (s *ClientWunderground) conditions(ctx context.Context, query string, params url.Values) (*wundResponse, error) {
	start := time.Now()
	u := fmt.Sprintf("%s/api/%s/conditions/q/%s.json",
		s.baseURL, url.PathEscape(s.APIKey), url.PathEscape(query))
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	body, err := get(ctx, s.client, s.logger, "conditions/q/"+query, u)
	if err != nil {
		return nil, err
	}

	var raw wundResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("query", query).
			Msg("failed to decode Weather Underground response")
		return nil, fmt.Errorf("decode Weather Underground response: %w", err)
	}

	if e := raw.Response.Error; e != nil {
		if e.Type == wundNotFound {
			return nil, &NotFoundError{Query: query}
		}
		return nil, fmt.Errorf("weather underground error: %s: %s", e.Type, e.Description)
	}
	if raw.CurrentObservation == nil {
		return nil, &NotFoundError{Query: query}
	}

	s.logger.Debug().
		Ctx(ctx).
		Str("query", query).
		Dur("duration_ms", time.Since(start)).
		Msg("fetched Weather Underground conditions")

	return &raw, nil
}

func wundIcon(name string) int {
	return wundIcons[strings.TrimPrefix(name, "nt_")]
}
