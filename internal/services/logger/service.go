package logger

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	redacted    = "REDACTED"
	maxBodySnip = 512
)

// RoundTripper logs every outbound request with its status, duration and
// the head of the response body. API keys never reach the log.
type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
	// Secrets are replaced wherever they appear in a logged URL.
	Secrets []string
}

func NewRoundTripper(logger *zap.Logger, secrets ...string) *RoundTripper {
	return &RoundTripper{
		Logger:  logger,
		Proxy:   http.DefaultTransport,
		Secrets: secrets,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)
	target := l.redact(req.URL)

	if err != nil {
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		l.Logger.Error("Failed to read response body",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	snip := bodyBytes
	if len(snip) > maxBodySnip {
		snip = snip[:maxBodySnip]
	}

	l.Logger.Info("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.ByteString("body_snipped", snip),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

func (l *RoundTripper) redact(u *url.URL) string {
	c := *u
	q := c.Query()
	if q.Has("apikey") {
		q.Set("apikey", redacted)
		c.RawQuery = q.Encode()
	}
	s := c.String()
	for _, secret := range l.Secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, redacted)
			s = strings.ReplaceAll(s, url.PathEscape(secret), redacted)
		}
	}
	return s
}
