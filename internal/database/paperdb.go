// Package database provides SQLite-based storage for daily paper runs.
// Stored runs back the report and serve commands, which re-render or
// review a day's papers without re-fetching or re-summarizing them.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// ErrRunNotFound is returned when no run is stored for the requested date.
var ErrRunNotFound = errors.New("no stored run for date")

// dateFormat is the canonical run-date key.
const dateFormat = "2006-01-02"

// PaperDB provides SQLite-based storage for daily runs.
//
// Design decision: Papers are stored as one JSON document per paper with
// the run date and section as queryable columns. The application always
// loads a whole day at once, so per-field columns would only add schema
// churn every time the Paper shape grows a field.
type PaperDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Open opens or creates a PaperDB in the given directory.
func Open(dbDir string) (*PaperDB, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	dbPath := filepath.Join(dbDir, "arxiv-daily.db")

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY surprises during the store step.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pdb := &PaperDB{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if err := pdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return pdb, nil
}

// Close closes the database connection.
func (pdb *PaperDB) Close() error {
	return pdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (pdb *PaperDB) createTables() error {
	schema := `
	-- One row per daily pipeline run
	CREATE TABLE IF NOT EXISTS runs (
		date TEXT PRIMARY KEY,
		generated_at DATETIME NOT NULL,
		categories TEXT NOT NULL,
		error TEXT
	);

	-- One row per paper per run, ordered by position within the run
	CREATE TABLE IF NOT EXISTS papers (
		run_date TEXT NOT NULL,
		position INTEGER NOT NULL,
		paper_id TEXT NOT NULL,
		section TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (run_date, position),
		FOREIGN KEY (run_date) REFERENCES runs(date) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_papers_paper_id ON papers(paper_id);
	CREATE INDEX IF NOT EXISTS idx_papers_section ON papers(run_date, section);
	`
	_, err := pdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport stores a daily report, replacing any existing run for the
// same date. The replace happens in one transaction so a failed save
// never leaves a half-written day behind.
func (pdb *PaperDB) SaveReport(ctx context.Context, report *model.DailyReport) error {
	tx, err := pdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	date := report.Date.Format(dateFormat)

	if _, err := tx.ExecContext(ctx, `DELETE FROM papers WHERE run_date = ?`, date); err != nil {
		return fmt.Errorf("clear previous papers: %w", err)
	}

	categories, err := json.Marshal(report.QueriedCategories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (date, generated_at, categories, error)
		VALUES (?, ?, ?, ?)
	`, date, report.GeneratedAt.UTC().Format(time.RFC3339), string(categories), report.Error); err != nil {
		return fmt.Errorf("store run: %w", err)
	}

	position := 0
	for _, section := range report.Sections {
		for _, paper := range section.Papers {
			data, err := json.Marshal(paper)
			if err != nil {
				return fmt.Errorf("marshal paper %s: %w", paper.ID, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO papers (run_date, position, paper_id, section, data)
				VALUES (?, ?, ?, ?, ?)
			`, date, position, paper.ID, section.ID, string(data)); err != nil {
				return fmt.Errorf("store paper %s: %w", paper.ID, err)
			}
			position++
		}
	}

	return tx.Commit()
}

// LoadReport loads the run stored for the given date.
// It returns ErrRunNotFound when the date has no stored run.
func (pdb *PaperDB) LoadReport(ctx context.Context, date time.Time) (*model.DailyReport, error) {
	key := date.Format(dateFormat)

	var generatedAt, categories string
	var runErr sql.NullString
	err := pdb.db.QueryRowContext(ctx, `
		SELECT generated_at, categories, error FROM runs WHERE date = ?
	`, key).Scan(&generatedAt, &categories, &runErr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	report := &model.DailyReport{Error: runErr.String}
	if report.Date, err = time.Parse(dateFormat, key); err != nil {
		return nil, fmt.Errorf("parse run date: %w", err)
	}
	if report.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt); err != nil {
		return nil, fmt.Errorf("parse generated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(categories), &report.QueriedCategories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	rows, err := pdb.db.QueryContext(ctx, `
		SELECT data FROM papers WHERE run_date = ? ORDER BY position
	`, key)
	if err != nil {
		return nil, fmt.Errorf("load papers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var papers []model.Paper
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		var p model.Paper
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("parse paper: %w", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate papers: %w", err)
	}

	report.GroupBySections(papers)
	return report, nil
}

// ListDates returns the stored run dates, newest first.
func (pdb *PaperDB) ListDates(ctx context.Context) ([]time.Time, error) {
	rows, err := pdb.db.QueryContext(ctx, `SELECT date FROM runs ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan run date: %w", err)
		}
		d, err := time.Parse(dateFormat, key)
		if err != nil {
			return nil, fmt.Errorf("parse run date %q: %w", key, err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// LatestDate returns the most recent stored run date.
// It returns ErrRunNotFound when the database holds no runs.
func (pdb *PaperDB) LatestDate(ctx context.Context) (time.Time, error) {
	dates, err := pdb.ListDates(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if len(dates) == 0 {
		return time.Time{}, ErrRunNotFound
	}
	return dates[0], nil
}
