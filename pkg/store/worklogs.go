package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the format of WorkLog.Date.
const DateLayout = "2006-01-02"

// WorkLog is a dated journal entry.
type WorkLog struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

const workLogColumns = "id, date, content, created_at"

func scanWorkLog(row interface{ Scan(...any) error }) (WorkLog, error) {
	var w WorkLog
	err := row.Scan(&w.ID, &w.Date, &w.Content, &w.CreatedAt)
	return w, err
}

// Today returns the current local date in DateLayout.
func (s *Store) Today() string {
	return s.now().Format(DateLayout)
}

// ListWorkLogs returns entries, latest date first.
func (s *Store) ListWorkLogs(ctx context.Context) ([]WorkLog, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+workLogColumns+" FROM work_logs ORDER BY date DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []WorkLog
	for rows.Next() {
		w, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// GetWorkLog returns the entry with id.
func (s *Store) GetWorkLog(ctx context.Context, id string) (WorkLog, error) {
	w, err := scanWorkLog(s.db.QueryRowContext(ctx, "SELECT "+workLogColumns+" FROM work_logs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return WorkLog{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return w, err
}

// AddWorkLog stores an entry for date. An empty date means today.
func (s *Store) AddWorkLog(ctx context.Context, date, content string) (WorkLog, error) {
	if date == "" {
		date = s.Today()
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return WorkLog{}, fmt.Errorf("store: invalid date %q: %w", date, err)
	}
	if err := checkLength(content, MaxWorkLogContent, "work log"); err != nil {
		return WorkLog{}, err
	}

	w := WorkLog{ID: newID(), Date: date, Content: content, CreatedAt: s.millis()}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO work_logs (id, date, content, created_at) VALUES (?, ?, ?, ?)",
		w.ID, w.Date, w.Content, w.CreatedAt)
	if err != nil {
		return WorkLog{}, fmt.Errorf("failed to add work log: %w", err)
	}
	return w, nil
}

// UpdateWorkLog replaces the content of an entry.
func (s *Store) UpdateWorkLog(ctx context.Context, id, content string) error {
	if err := checkLength(content, MaxWorkLogContent, "work log"); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "UPDATE work_logs SET content = ? WHERE id = ?", content, id)
	if err != nil {
		return fmt.Errorf("failed to update work log: %w", err)
	}
	return expectOne(res, id)
}

// DeleteWorkLog removes an entry.
func (s *Store) DeleteWorkLog(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM work_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete work log: %w", err)
	}
	return expectOne(res, id)
}
