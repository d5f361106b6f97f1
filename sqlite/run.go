package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sentimeter"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sentimeter.RunService = (*RunService)(nil)

// RunService implements sentimeter.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// batchHash identifies the classified batch by its texts, in order.
func batchHash(items []sentimeter.ClassifiedItem) string {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}
	return hashContent(strings.Join(texts, "\n"))
}

// CreateRun archives a run and its items in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *sentimeter.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}
	if err := run.Result.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()
	run.ContentHash = batchHash(run.Result.Items)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stats := run.Result.Statistics
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, page_url, positive_percent, neutral_percent, negative_percent, total_count, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.PageURL, stats.PositivePercent, stats.NeutralPercent, stats.NegativePercent,
		stats.TotalCount, run.ContentHash, run.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, item := range run.Result.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_items (run_id, position, text, sentiment, confidence)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, i, item.Text, string(item.Sentiment), item.Confidence); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its items by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*sentimeter.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, page_url, positive_percent, neutral_percent, negative_percent, total_count, content_hash, created_at
		FROM runs
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentimeter.Errorf(sentimeter.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT text, sentiment, confidence
		FROM run_items
		WHERE run_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []sentimeter.ClassifiedItem{}
	for rows.Next() {
		var item sentimeter.ClassifiedItem
		var sentiment string
		if err := rows.Scan(&item.Text, &sentiment, &item.Confidence); err != nil {
			return nil, err
		}
		item.Sentiment = sentimeter.Sentiment(sentiment)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	run.Result.Items = items

	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter sentimeter.RunFilter) ([]*sentimeter.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, page_url, positive_percent, neutral_percent, negative_percent, total_count, content_hash, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.PageURL != nil {
		query.WriteString(" AND page_url = ?")
		args = append(args, *filter.PageURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*sentimeter.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run. Items are removed by cascade.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sentimeter.Errorf(sentimeter.ENOTFOUND, "run not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*sentimeter.Run, error) {
	run := &sentimeter.Run{Result: &sentimeter.AnalysisResult{}}
	stats := &run.Result.Statistics
	var createdAt string

	if err := row.Scan(&run.ID, &run.PageURL, &stats.PositivePercent, &stats.NeutralPercent,
		&stats.NegativePercent, &stats.TotalCount, &run.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return run, nil
}
