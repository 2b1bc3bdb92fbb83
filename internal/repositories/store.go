package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"university-hr/internal/database"
	"university-hr/internal/metrics"
	"university-hr/internal/models"
)

// Store is the query layer shared by every repository. Statements are written
// with '?' placeholders and rebound for the pool's driver.
type Store struct {
	db      *sqlx.DB
	dialect database.Dialect
	metrics *metrics.Metrics
}

// NewStore wraps the shared pool. m may be nil.
func NewStore(db *sqlx.DB, m *metrics.Metrics) *Store {
	return &Store{db: db, dialect: database.NewDialect(db.DriverName()), metrics: m}
}

// Dialect returns the SQL dialect of the pool.
func (s *Store) Dialect() database.Dialect { return s.dialect }

// Ping checks the pool.
func (s *Store) Ping(ctx context.Context) error { return database.Ping(ctx, s.db) }

// Stats reports pool usage.
func (s *Store) Stats() sql.DBStats { return s.db.Stats() }

// observe times one database call and records its outcome under name.
func (s *Store) observe(name string, fn func() error) error {
	start := time.Now()
	err := fn()

	outcome := "ok"
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		kind := database.Classify(err)
		outcome = kind.String()
		logrus.WithFields(logrus.Fields{
			"routine": name,
			"kind":    outcome,
		}).WithError(err).Error("database call failed")
	}
	s.metrics.ObserveDBCall(name, outcome, time.Since(start).Seconds())
	return err
}

// rows runs a query and returns every row as a models.Row. An empty result is
// an empty, non-nil slice.
func (s *Store) rows(ctx context.Context, name, query string, args ...interface{}) ([]models.Row, error) {
	out := make([]models.Row, 0)
	err := s.observe(name, func() error {
		rs, err := s.db.QueryxContext(ctx, s.dialect.Rebind(query), args...)
		if err != nil {
			return err
		}
		defer rs.Close()
		for rs.Next() {
			m := make(map[string]interface{})
			if err := rs.MapScan(m); err != nil {
				return err
			}
			out = append(out, models.NewRow(m))
		}
		return rs.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// exec runs a statement that returns no rows the caller needs.
func (s *Store) exec(ctx context.Context, name, query string, args ...interface{}) error {
	err := s.observe(name, func() error {
		_, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// exists reports whether query yields at least one row.
func (s *Store) exists(ctx context.Context, name, query string, args ...interface{}) (bool, error) {
	var found bool
	err := s.observe(name, func() error {
		rs, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
		if err != nil {
			return err
		}
		defer rs.Close()
		found = rs.Next()
		return rs.Err()
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return found, nil
}

// count runs a single-value COUNT query.
func (s *Store) count(ctx context.Context, name, query string, args ...interface{}) (int, error) {
	var n int
	err := s.observe(name, func() error {
		return s.db.GetContext(ctx, &n, s.dialect.Rebind(query), args...)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// get scans the first row of query into dest. It reports false when there is no row.
func (s *Store) get(ctx context.Context, name string, dest interface{}, query string, args ...interface{}) (bool, error) {
	err := s.observe(name, func() error {
		return s.db.GetContext(ctx, dest, s.dialect.Rebind(query), args...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return true, nil
}

// list scans every row of query into the slice dest points to.
func (s *Store) list(ctx context.Context, name string, dest interface{}, query string, args ...interface{}) error {
	err := s.observe(name, func() error {
		return s.db.SelectContext(ctx, dest, s.dialect.Rebind(query), args...)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// procedure calls a stored procedure with positional arguments.
func (s *Store) procedure(ctx context.Context, name string, args ...interface{}) error {
	return s.exec(ctx, name, s.dialect.Procedure(name, len(args)), args...)
}

// tableFunction reads the result set of a table-valued routine.
func (s *Store) tableFunction(ctx context.Context, name string, args ...interface{}) ([]models.Row, error) {
	return s.rows(ctx, name, s.dialect.TableFunction(name, len(args)), args...)
}

// view reads every row of a view.
func (s *Store) view(ctx context.Context, name string) ([]models.Row, error) {
	return s.rows(ctx, name, "SELECT * FROM "+name)
}

// sortRowsDesc orders rows by a date-like column, newest first.
func sortRowsDesc(rows []models.Row, column string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rowTime(rows[i][column]).After(rowTime(rows[j][column]))
	})
}

func rowTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		var d models.Date
		if err := d.Scan(t); err == nil {
			return d.Time
		}
	}
	return time.Time{}
}
