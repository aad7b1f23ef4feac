package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Priority of a todo.
type Priority int

// Todo priorities, lowest first.
const (
	PriorityNormal Priority = iota
	PriorityImportant
	PriorityUrgent
)

// String returns the label shown for the priority.
func (p Priority) String() string {
	switch p {
	case PriorityImportant:
		return "important"
	case PriorityUrgent:
		return "urgent"
	default:
		return "normal"
	}
}

// Next cycles normal, important, urgent, normal.
func (p Priority) Next() Priority {
	return (p + 1) % (PriorityUrgent + 1)
}

// Todo is a single task. DoneAt is zero while pending.
type Todo struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Done      bool     `json:"is_done"`
	Priority  Priority `json:"priority"`
	CreatedAt int64    `json:"created_at"`
	DoneAt    int64    `json:"done_at,omitempty"`
}

const todoColumns = "id, content, is_done, priority, created_at, done_at"

func scanTodo(row interface{ Scan(...any) error }) (Todo, error) {
	var t Todo
	var doneAt sql.NullInt64
	err := row.Scan(&t.ID, &t.Content, &t.Done, &t.Priority, &t.CreatedAt, &doneAt)
	t.DoneAt = doneAt.Int64
	return t, err
}

// ListTodos returns pending todos first, then by priority and newest.
func (s *Store) ListTodos(ctx context.Context) ([]Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+todoColumns+" FROM todos ORDER BY is_done ASC, priority DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// GetTodo returns the todo with id.
func (s *Store) GetTodo(ctx context.Context, id string) (Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx, "SELECT "+todoColumns+" FROM todos WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Todo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, err
}

// AddTodo stores a new pending todo. Content is trimmed first.
func (s *Store) AddTodo(ctx context.Context, content string) (Todo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Todo{}, ErrEmpty
	}
	if err := checkLength(content, MaxTodoContent, "todo"); err != nil {
		return Todo{}, err
	}

	t := Todo{
		ID:        newID(),
		Content:   content,
		Priority:  PriorityNormal,
		CreatedAt: s.millis(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (id, content, is_done, priority, created_at, done_at) VALUES (?, ?, 0, ?, ?, NULL)",
		t.ID, t.Content, t.Priority, t.CreatedAt)
	if err != nil {
		return Todo{}, fmt.Errorf("failed to add todo: %w", err)
	}
	return t, nil
}

// ToggleTodo flips the done state and returns the updated todo.
func (s *Store) ToggleTodo(ctx context.Context, id string) (Todo, error) {
	t, err := s.GetTodo(ctx, id)
	if err != nil {
		return Todo{}, err
	}

	t.Done = !t.Done
	var doneAt any
	if t.Done {
		t.DoneAt = s.millis()
		doneAt = t.DoneAt
	} else {
		t.DoneAt = 0
	}

	res, err := s.db.ExecContext(ctx, "UPDATE todos SET is_done = ?, done_at = ? WHERE id = ?", t.Done, doneAt, id)
	if err != nil {
		return Todo{}, fmt.Errorf("failed to toggle todo: %w", err)
	}
	return t, expectOne(res, id)
}

// SetTodoPriority changes the priority of a todo.
func (s *Store) SetTodoPriority(ctx context.Context, id string, p Priority) error {
	if p < PriorityNormal || p > PriorityUrgent {
		return fmt.Errorf("store: invalid priority %d", p)
	}
	res, err := s.db.ExecContext(ctx, "UPDATE todos SET priority = ? WHERE id = ?", p, id)
	if err != nil {
		return fmt.Errorf("failed to set priority: %w", err)
	}
	return expectOne(res, id)
}

// DeleteTodo removes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return expectOne(res, id)
}

// ArchiveOldTodos moves todos finished more than ArchiveAfter ago into the
// archive and returns how many were moved by this call. ArchivedCount
// reports the archive total.
func (s *Store) ArchiveOldTodos(ctx context.Context) (int, error) {
	now := s.millis()
	cutoff := now - ArchiveAfter.Milliseconds()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO todos_archive (id, content, priority, created_at, done_at, archived_at)
		SELECT id, content, priority, created_at, done_at, ? FROM todos
		WHERE is_done = 1 AND done_at IS NOT NULL AND done_at < ?`, now, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to archive todos: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM todos WHERE is_done = 1 AND done_at IS NOT NULL AND done_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to archive todos: %w", err)
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(moved), nil
}

// ArchivedCount returns the number of archived todos.
func (s *Store) ArchivedCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos_archive").Scan(&count)
	return count, err
}
