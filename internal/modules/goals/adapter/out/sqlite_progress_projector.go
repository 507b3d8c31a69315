package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type SQLiteProgressProjector struct {
	db *sqlx.DB
}

type dailyTotalRow struct {
	Date  string `db:"date"`
	Words int    `db:"words"`
	Chars int    `db:"chars"`
	Goals int    `db:"goals"`
}

func NewSQLiteProgressProjector(dbPath string) (goalsout.ProgressIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)
	projector := &SQLiteProgressProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteProgressProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS daily_progress (
  goal_id TEXT NOT NULL,
  date TEXT NOT NULL,
  words INTEGER NOT NULL,
  chars INTEGER NOT NULL,
  project_ids TEXT,
  document_ids TEXT,
  updated_at TEXT NOT NULL,
  PRIMARY KEY (goal_id, date)
);
CREATE INDEX IF NOT EXISTS daily_progress_date ON daily_progress(date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create daily_progress table: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM daily_progress`); err != nil {
		return fmt.Errorf("reset daily_progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Upsert(ctx context.Context, rows ...domain.GoalProgress) error {
	if len(rows) == 0 {
		return nil
	}
	const stmt = `
INSERT INTO daily_progress (goal_id, date, words, chars, project_ids, document_ids, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(goal_id, date) DO UPDATE SET
  words=excluded.words,
  chars=excluded.chars,
  project_ids=excluded.project_ids,
  document_ids=excluded.document_ids,
  updated_at=excluded.updated_at;
`
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	for _, row := range rows {
		_, err := tx.ExecContext(ctx, stmt,
			row.GoalID,
			row.Date,
			row.WordsWritten,
			row.CharsWritten,
			strings.Join(row.ProjectIDs, ","),
			strings.Join(row.DocumentIDs, ","),
			row.UpdatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert progress %s/%s: %w", row.GoalID, row.Date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) DeleteGoal(ctx context.Context, goalID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM daily_progress WHERE goal_id = ?`, goalID); err != nil {
		return fmt.Errorf("delete goal progress: %w", err)
	}
	return nil
}

// DailyTotals returns one row per date in [from, to]. Words and chars are the
// max across goals so a save counted by several goals is not summed twice.
func (s *SQLiteProgressProjector) DailyTotals(ctx context.Context, from, to string) ([]domain.DailyTotal, error) {
	const query = `
SELECT date, MAX(words) AS words, MAX(chars) AS chars, COUNT(*) AS goals
FROM daily_progress
WHERE date >= ? AND date <= ?
GROUP BY date
ORDER BY date;
`
	var rows []dailyTotalRow
	if err := s.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	out := make([]domain.DailyTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.DailyTotal{Date: row.Date, Words: row.Words, Chars: row.Chars, Goals: row.Goals})
	}
	return out, nil
}

func (s *SQLiteProgressProjector) Close() error {
	return s.db.Close()
}
