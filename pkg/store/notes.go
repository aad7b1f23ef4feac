package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Note is a free-form text note.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

const noteColumns = "id, title, content, created_at, updated_at"

func scanNote(row interface{ Scan(...any) error }) (Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func checkNote(title, content string) error {
	if err := checkLength(title, MaxNoteTitle, "note title"); err != nil {
		return err
	}
	return checkLength(content, MaxNoteContent, "note content")
}

// ListNotes returns notes, most recently updated first.
func (s *Store) ListNotes(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetNote returns the note with id.
func (s *Store) GetNote(ctx context.Context, id string) (Note, error) {
	n, err := scanNote(s.db.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return n, err
}

// CreateNote stores a note. Both fields may be empty.
func (s *Store) CreateNote(ctx context.Context, title, content string) (Note, error) {
	if err := checkNote(title, content); err != nil {
		return Note{}, err
	}
	ts := s.millis()
	n := Note{ID: newID(), Title: title, Content: content, CreatedAt: ts, UpdatedAt: ts}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		n.ID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return Note{}, fmt.Errorf("failed to create note: %w", err)
	}
	return n, nil
}

// UpdateNote replaces the title and content of a note.
func (s *Store) UpdateNote(ctx context.Context, id, title, content string) (Note, error) {
	if err := checkNote(title, content); err != nil {
		return Note{}, err
	}
	ts := s.millis()
	res, err := s.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?", title, content, ts, id)
	if err != nil {
		return Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	if err := expectOne(res, id); err != nil {
		return Note{}, err
	}
	return s.GetNote(ctx, id)
}

// DeleteNote removes a note.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return expectOne(res, id)
}

// ImportNote stores n as is, keeping its id and timestamps. An existing note
// with the same id is replaced only when n is newer.
func (s *Store) ImportNote(ctx context.Context, n Note) (bool, error) {
	if err := checkNote(n.Title, n.Content); err != nil {
		return false, err
	}
	if n.ID == "" {
		n.ID = newID()
	}
	if n.CreatedAt == 0 {
		n.CreatedAt = s.millis()
	}
	if n.UpdatedAt == 0 {
		n.UpdatedAt = n.CreatedAt
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO notes (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, content = excluded.content, updated_at = excluded.updated_at
		WHERE excluded.updated_at > notes.updated_at`,
		n.ID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to import note: %w", err)
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}
