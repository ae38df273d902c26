package storage

import (
	"context"
	"fmt"

	"concierge/internal/env"
)

// Open builds the source selected by cfg.Source. The returned function
// releases its resources.
func Open(ctx context.Context, cfg env.Config) (Source, func(), error) {
	noop := func() {}
	if err := CheckKind(cfg.Source); err != nil {
		return nil, noop, err
	}

	switch cfg.Source {
	case KindPostgres:
		pg, err := NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return pg, pg.Close, nil
	case KindS3:
		svc, err := NewS3Service(cfg.Minio)
		if err != nil {
			return nil, noop, err
		}
		return NewS3(svc, cfg.Bucket, cfg.DatasetName), noop, nil
	case KindCSV:
		return NewCSV(cfg.CSV.Spots, cfg.CSV.Courses, cfg.CSV.CourseSpots, nil), noop, nil
	case KindXLSX:
		if cfg.XLSXPath == "" {
			return nil, noop, fmt.Errorf("xlsx source: XLSX_PATH is required")
		}
		return NewXLSX(cfg.XLSXPath), noop, nil
	}
	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
}
