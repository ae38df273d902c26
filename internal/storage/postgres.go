package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"concierge/internal/models"
)

const (
	spotsQuery = `
        SELECT COALESCE(spotid::text, ''), COALESCE(shrine_name, ''), COALESCE(address, ''),
               COALESCE(benefit_tag_1, ''), COALESCE(benefit_tag_2, ''),
               COALESCE(tag_attribute, ''), COALESCE(other_benefits, ''),
               COALESCE(latitude::text, ''), COALESCE(longitude::text, ''),
               COALESCE(category, '')
        FROM spots
        ORDER BY spotid
    `
	coursesQuery = `
        SELECT COALESCE(course_id::text, ''), COALESCE(name, ''), COALESCE(description, ''), COALESCE(theme, '')
        FROM courses
        ORDER BY course_id
    `
	courseSpotsQuery = `
        SELECT COALESCE(course_id::text, ''), COALESCE(spot_id::text, ''), COALESCE("order", 0)
        FROM course_spots
        ORDER BY course_id, "order"
    `
)

// Postgres reads the dataset from the spots, courses and course_spots tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to the database at url.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Load(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{}
	var err error

	ds.Locations, err = queryAll(ctx, p.pool, spotsQuery, func(row pgx.CollectableRow) (models.Location, error) {
		var (
			r            = record{}
			id, name     string
			addr, b1, b2 string
			attr, other  string
			lat, lon     string
			category     string
		)
		if err := row.Scan(&id, &name, &addr, &b1, &b2, &attr, &other, &lat, &lon, &category); err != nil {
			return models.Location{}, err
		}
		r["spotid"], r["shrine_name"], r["address"] = id, name, addr
		r["benefit_tag_1"], r["benefit_tag_2"] = b1, b2
		r["tag_attribute"], r["other_benefits"] = attr, other
		r["latitude"], r["longitude"], r["category"] = lat, lon, category
		return locationFrom(r), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load spots: %w", err)
	}

	ds.Courses, err = queryAll(ctx, p.pool, coursesQuery, func(row pgx.CollectableRow) (models.Course, error) {
		var c models.Course
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Theme)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	ds.Memberships, err = queryAll(ctx, p.pool, courseSpotsQuery, func(row pgx.CollectableRow) (models.CourseMembership, error) {
		var m models.CourseMembership
		err := row.Scan(&m.CourseID, &m.LocationID, &m.Order)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load course spots: %w", err)
	}

	ds = tidy(ds)
	log.WithFields(log.Fields{
		"spots":   len(ds.Locations),
		"courses": len(ds.Courses),
	}).Debug("loaded postgres dataset")
	return ds, nil
}

func queryAll[T any](ctx context.Context, pool *pgxpool.Pool, query string, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scan)
}
