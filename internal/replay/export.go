package replay

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/delta/tickreplay/internal/timeline"
)

// SQLiteExporter writes a loaded log into SQLite tables for ad-hoc queries.
type SQLiteExporter struct {
	db *sql.DB
}

// NewSQLiteExporter opens (or creates) the database at path.
func NewSQLiteExporter(path string) (*SQLiteExporter, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	e := &SQLiteExporter{db: db}
	if err := e.init(); err != nil {
		db.Close()
		return nil, err
	}
	return e, nil
}

// Close closes the database connection.
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}

// init applies pragmas and creates the schema.
func (e *SQLiteExporter) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := e.db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		records INTEGER NOT NULL,
		discarded INTEGER NOT NULL,
		exported_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ticks (
		log_id INTEGER NOT NULL,
		idx INTEGER NOT NULL,
		sim_tick INTEGER,
		line INTEGER NOT NULL,
		event_count INTEGER NOT NULL,
		snapshot TEXT,
		PRIMARY KEY (log_id, idx),
		FOREIGN KEY (log_id) REFERENCES logs(id)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		log_id INTEGER NOT NULL,
		tick_idx INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		severity TEXT NOT NULL,
		text TEXT,
		payload TEXT,
		elapsed TEXT,
		FOREIGN KEY (log_id, tick_idx) REFERENCES ticks(log_id, idx)
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(log_id, tick_idx);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`
	if _, err := e.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Export writes one log in a single transaction and returns its row id.
func (e *SQLiteExporter) Export(ctx context.Context, log *Log) (int64, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO logs (path, records, discarded, exported_at) VALUES (?, ?, ?, ?)`,
		log.Path, log.Records, log.Discarded, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert log: %w", err)
	}
	logID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read log id: %w", err)
	}

	tickStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ticks (log_id, idx, sim_tick, line, event_count, snapshot) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare tick insert: %w", err)
	}
	defer tickStmt.Close()

	eventStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (log_id, tick_idx, seq, kind, severity, text, payload, elapsed) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer eventStmt.Close()

	for i, tick := range log.Ticks {
		simTick, snapshot := tickColumns(tick)
		if _, err := tickStmt.ExecContext(ctx, logID, i, simTick, tick.Line, len(tick.Events), snapshot); err != nil {
			return 0, fmt.Errorf("failed to insert tick %d: %w", i, err)
		}

		for seq, event := range tick.Events {
			payload, err := json.Marshal(event.Payload)
			if err != nil {
				return 0, fmt.Errorf("failed to encode payload of event %d of tick %d: %w", seq, i, err)
			}
			if _, err := eventStmt.ExecContext(ctx, logID, i, seq, string(event.Kind),
				string(event.Severity()), event.Text(), string(payload), nullString(event.Elapsed)); err != nil {
				return 0, fmt.Errorf("failed to insert event %d of tick %d: %w", seq, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit export: %w", err)
	}
	return logID, nil
}

func tickColumns(tick timeline.Tick) (simTick sql.NullInt64, snapshot sql.NullString) {
	if tick.Snapshot == nil {
		return simTick, snapshot
	}
	simTick = sql.NullInt64{Int64: int64(tick.Snapshot.Tick), Valid: true}
	if len(tick.View.Payload) > 0 {
		snapshot = sql.NullString{String: tick.View.First(), Valid: true}
	}
	return simTick, snapshot
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
