package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/console-weather/internal/models"
	"github.com/Nazarious-ucu/console-weather/internal/services/apierror"
)

const (
	BackendAccuWeather  = "accu"
	BackendWunderground = "wund"
)

var (
	ErrUnsupportedBackend = errors.New("weather backend is not supported")
	ErrMissingLocationKey = errors.New("location has no key")
	ErrEmptyQuery         = errors.New("neither postal code nor IP address given")
)

// NotFoundError means the service answered but none of its records matched.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("location not found: %s", e.Query)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Query selects a location either by postal code or by IP address. Postal
// wins when both are set.
type Query struct {
	Postal string
	IP     string
}

// Provider is one of the supported weather backends. The set is closed:
// only this package can implement it.
type Provider interface {
	// Host is the service hostname the API key is stored under.
	Host() string
	ResolveLocation(ctx context.Context, q Query) (models.Location, error)
	FetchConditions(ctx context.Context, loc models.Location, details bool) (models.Conditions, error)

	provider()
}

type Options struct {
	Scheme     string
	Host       string
	APIKey     string
	HTTPClient HTTPClient
	Logger     zerolog.Logger
}

func (o Options) baseURL() string {
	scheme := o.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, strings.TrimRight(o.Host, "/"))
}

// New builds the provider registered under backend.
func New(backend string, opts Options) (Provider, error) {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	switch backend {
	case BackendAccuWeather:
		return NewClientAccuWeather(opts), nil
	case BackendWunderground:
		return NewClientWunderground(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
}

// get performs a GET and returns the body of a 200 answer. Any other status
// is turned into an *apierror.StatusError.
func get(ctx context.Context, client HTTPClient, logger zerolog.Logger, endpoint, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		// the request URL carries the API key
		var uerr *neturl.Error
		if errors.As(err, &uerr) {
			uerr.URL = endpoint
		}
		logger.Error().
			Ctx(ctx).
			Err(err).
			Str("endpoint", endpoint).
			Msg("error sending HTTP request")
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error().
				Ctx(ctx).
				Err(cerr).
				Msg("failed to close response body")
		}
	}()

	logger.Debug().
		Ctx(ctx).
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Msg("received response")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := apierror.Check(resp.StatusCode, body); err != nil {
		logger.Error().
			Ctx(ctx).
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Err(err).
			Msg("weather API returned non-200 status")
		return nil, err
	}
	return body, nil
}
