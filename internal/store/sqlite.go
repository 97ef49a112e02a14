package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ridgeline-data/propmail/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	region      TEXT NOT NULL,
	fips        TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	records     INTEGER NOT NULL DEFAULT 0,
	inserted    INTEGER NOT NULL DEFAULT 0,
	updated     INTEGER NOT NULL DEFAULT 0,
	datasets    TEXT,
	output_file TEXT,
	error       TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_region ON runs(region);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, region, fips string) (*model.LinkageRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, region, fips, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, region, fips, string(model.RunStatusRunning), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.LinkageRun{
		ID:        id,
		Region:    region,
		FIPS:      fips,
		Status:    model.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update run status %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, run *model.LinkageRun) error {
	datasetsJSON, err := json.Marshal(run.Datasets)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal datasets")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, records = ?, inserted = ?, updated = ?,
		 datasets = ?, output_file = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(run.Status), run.Records, run.Inserted, run.Updated,
		string(datasetsJSON), run.OutputFile, run.Error, time.Now().UTC(), run.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", run.ID)
	}
	return checkRowsAffected(res, "run", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.LinkageRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, region, fips, status, records, inserted, updated, datasets,
		 output_file, error, created_at, updated_at FROM runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.LinkageRun, error) {
	query := `SELECT id, region, fips, status, records, inserted, updated, datasets,
	 output_file, error, created_at, updated_at FROM runs WHERE 1=1`
	var args []any

	if filter.Region != "" {
		query += ` AND region = ?`
		args = append(args, filter.Region)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.LinkageRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrapf(err, "sqlite: rows affected for %s %s", entity, id)
	}
	if n == 0 {
		return eris.Errorf("sqlite: %s %s not found", entity, id)
	}
	return nil
}

// scannable covers sql.Row and sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.LinkageRun, error) {
	var (
		r            model.LinkageRun
		status       string
		datasetsJSON sql.NullString
		outputFile   sql.NullString
		runErr       sql.NullString
	)
	err := row.Scan(&r.ID, &r.Region, &r.FIPS, &status, &r.Records, &r.Inserted,
		&r.Updated, &datasetsJSON, &outputFile, &runErr, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("sqlite: run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	r.Status = model.RunStatus(status)
	r.OutputFile = outputFile.String
	r.Error = runErr.String
	if datasetsJSON.Valid && datasetsJSON.String != "" {
		if err := json.Unmarshal([]byte(datasetsJSON.String), &r.Datasets); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal datasets")
		}
	}
	return &r, nil
}
