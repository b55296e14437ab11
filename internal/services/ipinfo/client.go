package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/console-weather/internal/models"
	"github.com/Nazarious-ucu/console-weather/internal/services/apierror"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client asks a "what is my IP" service for the caller's public address and
// its best-guess city, region and postal code.
type Client struct {
	baseURL string
	client  HTTPClient
	logger  zerolog.Logger
}

func NewClient(baseURL string, httpClient HTTPClient, logger zerolog.Logger) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient, logger: logger}
}

// External returns the IP info of the caller. When ip is not empty the
// service is asked about that address instead.
func (c *Client) External(ctx context.Context, ip string) (models.IPInfo, error) {
	start := time.Now()
	url := c.baseURL
	if ip != "" {
		url = fmt.Sprintf("%s/%s", c.baseURL, ip)
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("url", url).
		Msg("starting IP info request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.IPInfo{}, fmt.Errorf("build IP info request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("url", url).
			Msg("error sending HTTP request to IP info service")
		return models.IPInfo{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().
				Ctx(ctx).
				Err(cerr).
				Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.IPInfo{}, fmt.Errorf("read IP info response: %w", err)
	}

	if err := apierror.Check(resp.StatusCode, body); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Int("status_code", resp.StatusCode).
			Err(err).
			Msg("IP info service returned non-200 status")
		return models.IPInfo{}, err
	}

	var info models.IPInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return models.IPInfo{}, fmt.Errorf("decode IP info response: %w", err)
	}

	c.logger.Info().
		Ctx(ctx).
		Str("ip", info.IP).
		Str("postal", info.Postal).
		Dur("duration_ms", time.Since(start)).
		Msg("resolved external IP")

	return info, nil
}
