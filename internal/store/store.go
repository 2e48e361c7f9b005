// Package store persists pipeline runs into SQLite: one row per run
// with its parameters and summary counts, and one row per point with
// its final curve labels. The schema is created on open.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/triplclust/internal/geom"
	"github.com/banshee-data/triplclust/internal/output"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	source_path TEXT,
	params_json TEXT,
	point_count INTEGER,
	cluster_count INTEGER,
	noise_count INTEGER,
	duration_ms INTEGER
);
CREATE TABLE IF NOT EXISTS point_labels (
	run_id TEXT,
	point_index INTEGER,
	x DOUBLE,
	y DOUBLE,
	z DOUBLE,
	curve_ids TEXT,
	FOREIGN KEY(run_id) REFERENCES runs(run_id)
);
CREATE INDEX IF NOT EXISTS idx_point_labels_run ON point_labels(run_id);
`

// Run is one recorded pipeline execution.
type Run struct {
	RunID        string
	CreatedAt    time.Time
	SourcePath   string
	ParamsJSON   string
	PointCount   int
	ClusterCount int
	NoiseCount   int
	DurationMS   int64
}

// Store wraps the SQLite database holding recorded runs.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts the run and the per-point labels of the cloud in a
// single transaction. A missing RunID is filled with a fresh UUID.
func (s *Store) RecordRun(run *Run, cloud *geom.PointCloud) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			run_id, created_at, source_path, params_json,
			point_count, cluster_count, noise_count, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedAt, run.SourcePath, run.ParamsJSON,
		run.PointCount, run.ClusterCount, run.NoiseCount, run.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO point_labels (run_id, point_index, x, y, z, curve_ids)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, p := range cloud.Points {
		if _, err := stmt.Exec(run.RunID, i, p.Vec.X, p.Vec.Y, p.Vec.Z,
			output.JoinClusterIDs(p.ClusterIDs)); err != nil {
			return fmt.Errorf("insert label %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetRun loads a recorded run by id.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, created_at, source_path, params_json,
		       point_count, cluster_count, noise_count, duration_ms
		FROM runs WHERE run_id = ?`, runID)
	var run Run
	if err := row.Scan(&run.RunID, &run.CreatedAt, &run.SourcePath, &run.ParamsJSON,
		&run.PointCount, &run.ClusterCount, &run.NoiseCount, &run.DurationMS); err != nil {
		return nil, err
	}
	return &run, nil
}

// CountLabels returns the number of stored point labels for a run.
func (s *Store) CountLabels(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM point_labels WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
