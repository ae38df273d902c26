package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"concierge/pkg/geo"
)

const nominatimSearchURL = "https://nominatim.openstreetmap.org/search"

// NominatimResponse is shaped for the search API response.
type NominatimResponse []struct {
	PlaceID     int64   `json:"place_id"`
	OsmType     string  `json:"osm_type"`
	OsmID       int64   `json:"osm_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
	AddressType string  `json:"addresstype"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
}

// Nominatim geocodes against OpenStreetMap. The public instance allows one
// request per second, which the limiter enforces across goroutines.
type Nominatim struct {
	httpClient   *http.Client
	userAgent    string
	language     string
	countryCodes string
	limiter      *rate.Limiter
}

func NewNominatim(httpClient *http.Client) *Nominatim {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}
	return &Nominatim{
		httpClient:   httpClient,
		userAgent:    "golang-shrine-concierge/1.0",
		language:     "ja",
		countryCodes: "jp",
		limiter:      rate.NewLimiter(rate.Limit(1), 1),
	}
}

// WithLimit replaces the request rate limit; use rate.Inf for private instances.
func (n *Nominatim) WithLimit(l rate.Limit, burst int) *Nominatim {
	n.limiter = rate.NewLimiter(l, burst)
	return n
}

// Search returns the raw search results for query.
func (n *Nominatim) Search(ctx context.Context, query string) (NominatimResponse, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", n.language)
	if n.countryCodes != "" {
		params.Set("countrycodes", n.countryCodes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var results NominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	return results, nil
}

// Geocode returns the coordinate of the best match for address.
func (n *Nominatim) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	results, err := n.Search(ctx, address)
	if err != nil {
		return geo.Coordinate{}, err
	}
	if len(results) == 0 {
		return geo.Coordinate{}, fmt.Errorf("%w for %s", ErrNoResults, address)
	}

	first := results[0]
	lat, err := parseFloat(first.Lat)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("malformed latitude %q: %w", first.Lat, err)
	}
	lon, err := parseFloat(first.Lon)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("malformed longitude %q: %w", first.Lon, err)
	}
	c := geo.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return geo.Coordinate{}, fmt.Errorf("coordinate out of range: %s", c)
	}
	return c, nil
}
