package station

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gadsdencode/CivMap-sub000/line"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed station catalog. It exists so large datasets
// can live in a single-file database instead of a YAML file; the layout
// engine is indifferent to which backend supplied the records.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) a catalog database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating catalog database: %w", err)
	}
	return st, nil
}

// Close releases the underlying database handle.
func (st *Store) Close() error {
	return st.db.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS stations (
		id           TEXT PRIMARY KEY,
		year         INTEGER NOT NULL,
		lines        TEXT NOT NULL,
		significance TEXT NOT NULL DEFAULT 'normal',
		title        TEXT NOT NULL DEFAULT '',
		summary      TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_stations_year ON stations(year);
	`
	_, err := st.db.Exec(schema)
	return err
}

// ReplaceAll swaps the stored catalog for the given station set in one
// transaction. The catalog is always written wholesale; there is no
// incremental update path, matching how layout recomputation works.
func (st *Store) ReplaceAll(ctx context.Context, stations []Station) error {
	if err := ValidateSet(stations); err != nil {
		return err
	}
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return fmt.Errorf("clearing stations: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stations (id, year, lines, significance, title, summary) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stations {
		if _, err := stmt.ExecContext(ctx, s.ID, s.Year, encodeLines(s.Lines), s.Significance.String(), s.Title, s.Summary); err != nil {
			return fmt.Errorf("inserting station %s: %w", s.ID, err)
		}
	}
	return tx.Commit()
}

// All returns every station ordered by year, then id.
func (st *Store) All(ctx context.Context) ([]Station, error) {
	return st.query(ctx, `SELECT id, year, lines, significance, title, summary FROM stations ORDER BY year, id`)
}

// ByYearRange returns stations with from <= year <= to, ordered by year.
func (st *Store) ByYearRange(ctx context.Context, from, to int) ([]Station, error) {
	return st.query(ctx,
		`SELECT id, year, lines, significance, title, summary FROM stations WHERE year BETWEEN ? AND ? ORDER BY year, id`,
		from, to)
}

// ByLine returns stations whose line set includes l, ordered by year.
func (st *Store) ByLine(ctx context.Context, l line.Line) ([]Station, error) {
	all, err := st.All(ctx)
	if err != nil {
		return nil, err
	}
	// The line set is denormalized into one column; filtering in Go keeps
	// the schema flat and the catalog sizes involved make this cheap.
	var out []Station
	for _, s := range all {
		if s.OnLine(l) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (st *Store) query(ctx context.Context, q string, args ...interface{}) ([]Station, error) {
	rows, err := st.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stations: %w", err)
	}
	defer rows.Close()

	var out []Station
	for rows.Next() {
		var s Station
		var lines, sig string
		if err := rows.Scan(&s.ID, &s.Year, &lines, &sig, &s.Title, &s.Summary); err != nil {
			return nil, fmt.Errorf("scanning station: %w", err)
		}
		if s.Lines, err = decodeLines(lines); err != nil {
			return nil, fmt.Errorf("station %s: %w", s.ID, err)
		}
		if s.Significance, err = ParseSignificance(sig); err != nil {
			return nil, fmt.Errorf("station %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func encodeLines(lines []line.Line) string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.String()
	}
	return strings.Join(names, ",")
}

func decodeLines(encoded string) ([]line.Line, error) {
	parts := strings.Split(encoded, ",")
	lines := make([]line.Line, 0, len(parts))
	for _, p := range parts {
		l, err := line.Parse(p)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
