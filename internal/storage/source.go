// Package storage loads the location and course dataset from the supported
// backends.
package storage

import (
	"context"
	"errors"
	"fmt"

	"concierge/internal/models"
)

// ErrUnknownSource is returned for an unsupported source kind.
var ErrUnknownSource = errors.New("unknown data source")

// Source provides a read-only dataset snapshot.
type Source interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

const (
	KindPostgres = "postgres"
	KindS3       = "s3"
	KindCSV      = "csv"
	KindXLSX     = "xlsx"
)

// CheckKind validates a source kind name.
func CheckKind(kind string) error {
	switch kind {
	case KindPostgres, KindS3, KindCSV, KindXLSX:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}
