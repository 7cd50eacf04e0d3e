// Package mapbox is a client for the Mapbox Geocoding API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/union-tracker/internal/config"
	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/domain/repository"
	"github.com/union-tracker/internal/pkg/utils"
)

const resultLimit = 5

// geocodeResponse is the subset of the forward geocoding response we read.
type geocodeResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	PlaceName string       `json:"place_name"`
	Address   string       `json:"address"`
	PlaceType []string     `json:"place_type"`
	Center    []float64    `json:"center"` // [lon, lat]
	Context   []contextRef `json:"context"`
}

type contextRef struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	ShortCode string `json:"short_code"`
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewMapboxClient creates a geocoder backed by Mapbox.
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// Geocode forwards query to mapbox.places and returns matches best first.
func (c *client) Geocode(ctx context.Context, query string) ([]domain.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("limit", fmt.Sprintf("%d", resultLimit))

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		c.baseURL, url.PathEscape(query), params.Encode())

	c.logger.Debug("Calling Mapbox Geocoding API", zap.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var geoResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]domain.GeocodeResult, 0, len(geoResp.Features))
	for _, f := range geoResp.Features {
		if len(f.Center) != 2 || !utils.ValidateCoordinates(f.Center[1], f.Center[0]) {
			continue
		}
		results = append(results, f.toResult())
	}

	c.logger.Debug("Mapbox Geocoding API call successful",
		zap.String("query", query),
		zap.Int("results", len(results)))

	return results, nil
}

func (f feature) toResult() domain.GeocodeResult {
	r := domain.GeocodeResult{
		Longitude:        f.Center[0],
		Latitude:         f.Center[1],
		FormattedAddress: f.PlaceName,
	}

	// The feature itself may be the postcode or place that was asked for.
	refs := append([]contextRef{{ID: f.ID, Text: f.Text}}, f.Context...)
	for _, ref := range refs {
		switch layer(ref.ID) {
		case "address":
			r.StreetName = strings.TrimSpace(f.Address + " " + ref.Text)
		case "postcode":
			r.Zipcode = ref.Text
		case "place":
			r.City = ref.Text
		case "region":
			r.StateCode = regionCode(ref)
		case "country":
			r.CountryCode = strings.ToUpper(ref.ShortCode)
		}
	}
	return r
}

// layer returns the type prefix of a Mapbox id such as "postcode.123".
func layer(id string) string {
	prefix, _, _ := strings.Cut(id, ".")
	return prefix
}

// regionCode turns "US-MA" into "MA", falling back to the region name.
func regionCode(ref contextRef) string {
	if ref.ShortCode == "" {
		return ref.Text
	}
	if _, code, ok := strings.Cut(ref.ShortCode, "-"); ok {
		return strings.ToUpper(code)
	}
	return strings.ToUpper(ref.ShortCode)
}
