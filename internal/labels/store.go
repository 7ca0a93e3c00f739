package labels

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

// PrintJob is one recorded print attempt.
type PrintJob struct {
	JobID        string
	ProductName  string
	Barcode      string
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, j PrintJob) error {
	const q = `
	INSERT INTO print_jobs (job_id, product_name, barcode, success, error_message, created_at)
	VALUES (?, ?, ?, ?, ?, UTC_TIMESTAMP())`

	var errMsg any
	if j.ErrorMessage != "" {
		errMsg = j.ErrorMessage
	}
	_, err := s.db.ExecContext(ctx, q, j.JobID, j.ProductName, j.Barcode, j.Success, errMsg)
	return err
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]PrintJob, error) {
	const q = `
	SELECT job_id, product_name, barcode, success, COALESCE(error_message, ''), created_at
	FROM print_jobs
	ORDER BY created_at DESC, job_id DESC
	LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PrintJob
	for rows.Next() {
		var j PrintJob
		if err := rows.Scan(&j.JobID, &j.ProductName, &j.Barcode, &j.Success, &j.ErrorMessage, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
