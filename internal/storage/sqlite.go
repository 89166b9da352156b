// internal/storage/sqlite.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"mcp-diet-registry/internal/models"
)

var ErrRunNotFound = errors.New("export run not found")

// SQLiteStorage keeps export runs. Artifacts are stored zstd-compressed.
type SQLiteStorage struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared between queries.
	db.SetMaxOpenConns(1)

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}

	storage := &SQLiteStorage{db: db, enc: enc, dec: dec}
	if err := storage.initSchema(); err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	s.dec.Close()
	_ = s.enc.Close()
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS export_runs (
        id TEXT PRIMARY KEY,
        dimension TEXT NOT NULL,
        format TEXT NOT NULL,
        status TEXT NOT NULL,
        message TEXT NOT NULL DEFAULT '',
        row_count INTEGER NOT NULL DEFAULT 0,
        column_count INTEGER NOT NULL DEFAULT 0,
        started_at INTEGER NOT NULL,
        finished_at INTEGER NOT NULL,
        artifact BLOB
    );

    CREATE INDEX IF NOT EXISTS idx_export_runs_started_at ON export_runs(started_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) SaveRun(ctx context.Context, run *models.ExportRun) error {
	query := `
        INSERT INTO export_runs (id, dimension, format, status, message, row_count, column_count, started_at, finished_at, artifact)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	var artifact []byte
	if len(run.Artifact) > 0 {
		artifact = s.enc.EncodeAll(run.Artifact, nil)
	}
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.Dimension, run.Format, string(run.Status), run.Message,
		run.Rows, run.Columns,
		toUnixNano(run.StartedAt), toUnixNano(run.FinishedAt),
		artifact)
	if err != nil {
		return fmt.Errorf("failed to insert export run: %w", err)
	}
	return nil
}

// GetRun loads one run including its artifact.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*models.ExportRun, error) {
	query := `
        SELECT id, dimension, format, status, message, row_count, column_count, started_at, finished_at, artifact
        FROM export_runs
        WHERE id = ?
    `
	run, err := scanRun(s.db.QueryRowContext(ctx, query, id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if len(run.Artifact) > 0 {
		if run.Artifact, err = s.dec.DecodeAll(run.Artifact, nil); err != nil {
			return nil, fmt.Errorf("failed to decompress artifact of run %s: %w", id, err)
		}
	}
	return run, nil
}

// ListRuns returns the most recent runs first, without artifacts.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]*models.ExportRun, error) {
	query := `
        SELECT id, dimension, format, status, message, row_count, column_count, started_at, finished_at
        FROM export_runs
        ORDER BY started_at DESC, id DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ExportRun
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner, withArtifact bool) (*models.ExportRun, error) {
	run := &models.ExportRun{}
	var status string
	var started, finished int64

	dest := []any{
		&run.ID, &run.Dimension, &run.Format, &status, &run.Message,
		&run.Rows, &run.Columns, &started, &finished,
	}
	if withArtifact {
		dest = append(dest, &run.Artifact)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan export run: %w", err)
	}

	run.StartedAt = fromUnixNano(started)
	run.FinishedAt = fromUnixNano(finished)
	run.Status = models.RunStatus(status)

	return run, nil
}

// Timestamps are stored as unix nanoseconds so ORDER BY sorts chronologically.
// The zero time is stored as 0.
func toUnixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
