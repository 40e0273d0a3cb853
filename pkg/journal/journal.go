// Package journal keeps a local sqlite log of review submissions.
// It is write-mostly: the screen never reads it back for display.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/neotica/restaurantreview/pkg/model"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultLimit is the number of entries Recent returns when limit <= 0.
const DefaultLimit = 20

// Journal handles submission persistence
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at the given path
func Open(path string) (*Journal, error) {
	dsn := MemoryPath
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return j, nil
}

// TryOpen opens the journal, logging and returning nil on failure.
func TryOpen(path string, logger *slog.Logger) *Journal {
	j, err := Open(path)
	if err != nil {
		logger.Warn("journal disabled", "path", path, "error", err)
		return nil
	}
	return j
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id TEXT NOT NULL,
		reviewer TEXT NOT NULL,
		text TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_restaurant ON submissions(restaurant_id, created_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// RecordSubmission inserts a submission and sets its ID.
func (j *Journal) RecordSubmission(ctx context.Context, s *model.Submission) error {
	if !model.IsValidSubmissionOutcome(s.Outcome) {
		return fmt.Errorf("invalid submission outcome %q", s.Outcome)
	}

	result, err := j.db.ExecContext(ctx, `
		INSERT INTO submissions (restaurant_id, reviewer, text, outcome, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.RestaurantID, s.Reviewer, s.Text, s.Outcome, s.Error, s.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// Recent returns the newest submissions, newest first. An empty
// restaurantID matches every restaurant.
func (j *Journal) Recent(ctx context.Context, restaurantID string, limit int) ([]model.Submission, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, restaurant_id, reviewer, text, outcome, error, created_at
		FROM submissions
		WHERE ? = '' OR restaurant_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, restaurantID, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		var createdAt string
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.Reviewer, &s.Text, &s.Outcome, &s.Error, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
