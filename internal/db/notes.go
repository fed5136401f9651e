package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CreateNoteOpts carries the optional fields of CreateNote.
type CreateNoteOpts struct {
	Tags      []string
	CreatedAt time.Time // zero means now
}

// ListNotesFilter narrows and bounds ListNotes. Zero values leave a
// dimension unfiltered.
type ListNotesFilter struct {
	Limit         int
	Tag           string
	CreatedAfter  time.Time // inclusive
	CreatedBefore time.Time // exclusive
}

// scanNote scans a row into a Note. The row must have all 5 columns in
// standard order.
func (d *DB) scanNote(scanner interface{ Scan(dest ...any) error }) (Note, error) {
	var (
		n         Note
		tagsJSON  string
		createdMs int64
		updatedMs int64
	)
	if err := scanner.Scan(&n.ID, &n.Content, &tagsJSON, &createdMs, &updatedMs); err != nil {
		return n, err
	}
	n.Tags = d.parseTags(n.ID, tagsJSON)
	n.CreatedAt = time.UnixMilli(createdMs).UTC()
	n.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return n, nil
}

// parseTags decodes a stored tag list. A row whose tag data is malformed
// degrades to an empty list with a warning; one bad row must not poison a
// read or an aggregation.
func (d *DB) parseTags(noteID int64, raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		d.logger.Warn("malformed tag data, treating as empty",
			zap.Int64("note_id", noteID),
			zap.Error(err))
		return []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// replaceTagRows rewrites the note_tags rows for a note. Rows are
// deduplicated; the verbatim tag sequence lives in the notes row itself.
func replaceTagRows(ctx context.Context, tx *sql.Tx, noteID int64, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, noteID); err != nil {
		return fmt.Errorf("clearing tag rows: %w", err)
	}
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO note_tags (note_id, tag) VALUES (?, ?)
		`, noteID, tag); err != nil {
			return fmt.Errorf("inserting tag row: %w", err)
		}
	}
	return nil
}

// CreateNote inserts a new note and its tag rows in one transaction.
// Tags default to empty; created_at defaults to now.
func (d *DB) CreateNote(ctx context.Context, content string, opts CreateNoteOpts) (*Note, error) {
	tags := opts.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	createdAt := opts.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC().Truncate(time.Millisecond)

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO notes (content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, content, string(tagsJSON), createdAt.UnixMilli(), createdAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("inserting note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading note id: %w", err)
	}
	if err := replaceTagRows(ctx, tx, id, tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing note: %w", err)
	}

	return &Note{
		ID:        id,
		Content:   content,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// GetNote returns a single note by id, or ErrNoteNotFound.
func (d *DB) GetNote(ctx context.Context, id int64) (*Note, error) {
	row := d.conn.QueryRowContext(ctx, `
		SELECT id, content, tags, created_at, updated_at
		FROM notes WHERE id = ?
	`, id)

	n, err := d.scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListNotes returns notes newest first, narrowed by the filter. The tag
// filter matches whole tag values through note_tags, so "x" never matches
// a note tagged only "xyz".
func (d *DB) ListNotes(ctx context.Context, filter ListNotesFilter) ([]Note, error) {
	query := `
		SELECT n.id, n.content, n.tags, n.created_at, n.updated_at
		FROM notes n WHERE 1=1`
	var args []any

	if filter.Tag != "" {
		query += ` AND EXISTS (SELECT 1 FROM note_tags t WHERE t.note_id = n.id AND t.tag = ?)`
		args = append(args, filter.Tag)
	}
	if !filter.CreatedAfter.IsZero() {
		query += ` AND n.created_at >= ?`
		args = append(args, filter.CreatedAfter.UnixMilli())
	}
	if !filter.CreatedBefore.IsZero() {
		query += ` AND n.created_at < ?`
		args = append(args, filter.CreatedBefore.UnixMilli())
	}
	query += ` ORDER BY n.created_at DESC, n.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := d.scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote replaces a note's content and tags as one record. Both fields
// are required every time; there is no partial patch. created_at is never
// touched, updated_at is refreshed.
func (d *DB) UpdateNote(ctx context.Context, id int64, content string, tags []string) (*Note, error) {
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}
	updatedAt := time.Now().UTC().Truncate(time.Millisecond)

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE notes SET content = ?, tags = ?, updated_at = ? WHERE id = ?
	`, content, string(tagsJSON), updatedAt.UnixMilli(), id)
	if err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNoteNotFound
	}

	var createdMs int64
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM notes WHERE id = ?`, id).Scan(&createdMs); err != nil {
		return nil, fmt.Errorf("reading note: %w", err)
	}
	if err := replaceTagRows(ctx, tx, id, tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}

	return &Note{
		ID:        id,
		Content:   content,
		Tags:      tags,
		CreatedAt: time.UnixMilli(createdMs).UTC(),
		UpdatedAt: updatedAt,
	}, nil
}

// DeleteNote removes a note; its relations and tag rows go with it through
// the foreign-key cascades. Returns false, not an error, when the id does
// not exist.
func (d *DB) DeleteNote(ctx context.Context, id int64) (bool, error) {
	res, err := d.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}
