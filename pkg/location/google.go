package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"concierge/pkg/geo"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleResponse is the part of the Geocoding API response we read.
type GoogleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Google geocodes with the Google Maps Geocoding API.
type Google struct {
	httpClient *http.Client
	apiKey     string
	language   string
}

func NewGoogle(httpClient *http.Client, apiKey string) *Google {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}
	return &Google{httpClient: httpClient, apiKey: apiKey, language: "ja"}
}

func (g *Google) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	params.Set("language", g.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleGeocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return geo.Coordinate{}, err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var body GoogleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geo.Coordinate{}, fmt.Errorf("decode google response: %w", err)
	}
	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return geo.Coordinate{}, fmt.Errorf("%w for %s", ErrNoResults, address)
	default:
		return geo.Coordinate{}, fmt.Errorf("google geocoding %s: %s", body.Status, body.ErrorMessage)
	}
	if len(body.Results) == 0 {
		return geo.Coordinate{}, fmt.Errorf("%w for %s", ErrNoResults, address)
	}

	loc := body.Results[0].Geometry.Location
	c := geo.Coordinate{Lat: loc.Lat, Lon: loc.Lng}
	if !c.Valid() {
		return geo.Coordinate{}, fmt.Errorf("coordinate out of range: %s", c)
	}
	return c, nil
}
