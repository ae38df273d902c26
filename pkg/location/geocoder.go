// Package location resolves free-text addresses to coordinates through
// public geocoding APIs.
package location

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

// ErrNoResults is returned when the service answered but found nothing.
var ErrNoResults = errors.New("no geocoding results")

// DefaultTimeout bounds a single lookup so a slow service cannot stall a batch.
const DefaultTimeout = 10 * time.Second

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
