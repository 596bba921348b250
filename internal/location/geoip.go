package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/litescript/daylight/internal/logging"
	"github.com/litescript/daylight/internal/version"
)

const (
	// DefaultGeoIPURL answers with the caller's approximate location.
	DefaultGeoIPURL = "https://freegeoip.app/json/"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps the response size read from the service.
	maxBodyBytes = 1 << 20
)

// GeoIP locates the machine by its public IP address.
type GeoIP struct {
	client  *http.Client
	url     string
	timeout time.Duration
	log     *logging.Logger
}

// GeoIPOption configures a GeoIP provider.
type GeoIPOption func(*GeoIP)

// WithURL sets a custom lookup URL.
func WithURL(url string) GeoIPOption {
	return func(g *GeoIP) {
		g.url = url
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) GeoIPOption {
	return func(g *GeoIP) {
		g.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) GeoIPOption {
	return func(g *GeoIP) {
		g.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) GeoIPOption {
	return func(g *GeoIP) {
		g.log = log
	}
}

// NewGeoIP creates a geo-IP provider.
func NewGeoIP(opts ...GeoIPOption) *GeoIP {
	g := &GeoIP{
		url:     DefaultGeoIPURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.client == nil {
		g.client = &http.Client{
			Timeout: g.timeout,
		}
	}
	if g.log == nil {
		g.log = logging.Discard()
	}

	return g
}

// geoIPResponse covers the freegeoip field names and the ipapi variant.
type geoIPResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	TimeZone  string   `json:"time_zone"`
	Timezone  string   `json:"timezone"`
}

// Name implements Provider.
func (g *GeoIP) Name() string { return "geoip" }

// URL returns the configured lookup URL.
func (g *GeoIP) URL() string { return g.url }

// Locate implements Provider.
func (g *GeoIP) Locate(ctx context.Context) (Place, error) {
	start := time.Now()

	body, err := g.fetch(ctx)
	if err != nil {
		return Place{}, err
	}

	var resp geoIPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Place{}, fmt.Errorf("decode geo-IP response: %w", err)
	}
	if resp.Latitude == nil || resp.Longitude == nil {
		return Place{}, fmt.Errorf("geo-IP response without coordinates: %w", ErrNotFound)
	}

	tz := resp.TimeZone
	if tz == "" {
		tz = resp.Timezone
	}

	place := Place{
		Name:      resp.City,
		Latitude:  *resp.Latitude,
		Longitude: *resp.Longitude,
		TimeZone:  tz,
	}
	if err := place.Validate(); err != nil {
		// An unknown zone name should not discard usable coordinates.
		place.TimeZone = ""
		if err := place.Validate(); err != nil {
			return Place{}, err
		}
		g.log.Warn("ignoring unknown time zone %q", tz)
	}

	g.log.Debug("located %s in %v", place, time.Since(start))
	return place, nil
}

func (g *GeoIP) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch geo-IP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
