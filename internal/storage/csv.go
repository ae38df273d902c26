package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"concierge/internal/models"
)

// CSV reads the dataset from three CSV exports, each either a URL or a
// local file path.
type CSV struct {
	spots       string
	courses     string
	courseSpots string
	httpClient  *http.Client
}

func NewCSV(spots, courses, courseSpots string, httpClient *http.Client) *CSV {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &CSV{spots: spots, courses: courses, courseSpots: courseSpots, httpClient: httpClient}
}

func (c *CSV) Load(ctx context.Context) (*models.Dataset, error) {
	if c.spots == "" {
		return nil, fmt.Errorf("csv source: spots location is required")
	}

	tables := make([][][]string, 3)
	g, ctx := errgroup.WithContext(ctx)
	for i, loc := range []string{c.spots, c.courses, c.courseSpots} {
		if loc == "" {
			continue
		}
		g.Go(func() error {
			table, err := c.read(ctx, loc)
			if err != nil {
				return fmt.Errorf("read %s: %w", loc, err)
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := datasetFrom(tables[0], tables[1], tables[2])
	log.WithFields(log.Fields{
		"spots":   len(ds.Locations),
		"courses": len(ds.Courses),
	}).Debug("loaded csv dataset")
	return ds, nil
}

func (c *CSV) read(ctx context.Context, loc string) ([][]string, error) {
	if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
		f, err := os.Open(loc)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parseCSV(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return parseCSV(resp.Body)
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	table, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return table, nil
}
