package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/user624-47/farmflow-sub000/pkg/logger"
)

var (
	// ErrMissingAccessToken indicates the geocoding provider token is not
	// configured. Detected before any network call; not retryable.
	ErrMissingAccessToken = errors.New("geocoding access token is not configured")
	// ErrNoResults indicates the provider returned no features for the point
	ErrNoResults = errors.New("no geocoding results for coordinates")
)

const (
	geocodingMaxAttempts = 3
	geocodingBackoffStep = time.Second
)

// GeocodingConfig holds reverse-geocoding provider settings
type GeocodingConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

// GeocodingClient resolves coordinates to human-readable addresses through a
// Mapbox-compatible endpoint. Any failure, network error or non-2xx status,
// is retried up to 3 times with linearly increasing delay (1s, 2s, 3s), each
// retry re-issuing the identical request.
type GeocodingClient struct {
	cfg        GeocodingConfig
	httpClient *http.Client
	log        *logger.Logger
}

// NewGeocodingClient creates a GeocodingClient
func NewGeocodingClient(cfg GeocodingConfig, log *logger.Logger) *GeocodingClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &GeocodingClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type geocodingResponse struct {
	Features []struct {
		PlaceName string `json:"place_name"`
	} `json:"features"`
}

// ReverseGeocode resolves lng,lat to the provider's place name
func (c *GeocodingClient) ReverseGeocode(ctx context.Context, lng, lat float64) (string, error) {
	if c.cfg.AccessToken == "" {
		return "", ErrMissingAccessToken
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s,%s.json?access_token=%s",
		c.cfg.BaseURL,
		strconv.FormatFloat(lng, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64),
		url.QueryEscape(c.cfg.AccessToken))

	var lastErr error
	for attempt := 1; attempt <= geocodingMaxAttempts; attempt++ {
		if attempt > 1 {
			delay := time.Duration(attempt-1) * geocodingBackoffStep
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		address, err := c.fetch(ctx, endpoint)
		if err == nil {
			return address, nil
		}
		if errors.Is(err, ErrNoResults) || errors.Is(err, context.Canceled) {
			return "", err
		}
		lastErr = err
		c.log.WarnContext(ctx, "geocoding request failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}

	return "", fmt.Errorf("geocoding failed after %d attempts: %w", geocodingMaxAttempts, lastErr)
}

func (c *GeocodingClient) fetch(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)
	}

	var body geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(body.Features) == 0 {
		return "", ErrNoResults
	}

	return body.Features[0].PlaceName, nil
}
