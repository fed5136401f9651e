package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// AddComment creates a comment note and the Comment edge attaching it to
// the target as one unit: both rows persist or neither does.
func (d *DB) AddComment(ctx context.Context, targetID int64, content string, tags []string) (*Note, *Relation, error) {
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tags: %w", err)
	}
	createdAt := time.Now().UTC().Truncate(time.Millisecond)

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ok, err := noteExists(ctx, tx, targetID)
	if err != nil {
		return nil, nil, fmt.Errorf("checking note %d: %w", targetID, err)
	}
	if !ok {
		return nil, nil, ErrNoteNotFound
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO notes (content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, content, string(tagsJSON), createdAt.UnixMilli(), createdAt.UnixMilli())
	if err != nil {
		return nil, nil, fmt.Errorf("inserting comment note: %w", err)
	}
	noteID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("reading note id: %w", err)
	}
	if err := replaceTagRows(ctx, tx, noteID, tags); err != nil {
		return nil, nil, err
	}

	res, err = tx.ExecContext(ctx, `
		INSERT INTO note_relations (source_note_id, target_note_id, relation_type, created_at)
		VALUES (?, ?, ?, ?)
	`, noteID, targetID, string(RelationComment), createdAt.UnixMilli())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, nil, ErrNoteNotFound
		}
		return nil, nil, fmt.Errorf("inserting comment relation: %w", err)
	}
	relationID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("reading relation id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("committing comment: %w", err)
	}

	note := &Note{
		ID:        noteID,
		Content:   content,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	relation := &Relation{
		ID:           relationID,
		SourceNoteID: noteID,
		TargetNoteID: targetID,
		RelationType: RelationComment,
		CreatedAt:    createdAt,
	}
	return note, relation, nil
}

// CommentsForNote reconstructs a note's comment thread: every Comment edge
// targeting it, paired with its source note, in chronological order.
func (d *DB) CommentsForNote(ctx context.Context, noteID int64) ([]Comment, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT n.id, n.content, n.tags, n.created_at, n.updated_at,
		       r.id, r.source_note_id, r.target_note_id, r.created_at
		FROM note_relations r
		JOIN notes n ON n.id = r.source_note_id
		WHERE r.target_note_id = ? AND r.relation_type = ?
		ORDER BY r.created_at ASC, r.id ASC
	`, noteID, string(RelationComment))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var (
			c          Comment
			tagsJSON   string
			nCreatedMs int64
			nUpdatedMs int64
			rCreatedMs int64
		)
		if err := rows.Scan(
			&c.Note.ID, &c.Note.Content, &tagsJSON, &nCreatedMs, &nUpdatedMs,
			&c.Relation.ID, &c.Relation.SourceNoteID, &c.Relation.TargetNoteID, &rCreatedMs,
		); err != nil {
			return nil, err
		}
		c.Note.Tags = d.parseTags(c.Note.ID, tagsJSON)
		c.Note.CreatedAt = time.UnixMilli(nCreatedMs).UTC()
		c.Note.UpdatedAt = time.UnixMilli(nUpdatedMs).UTC()
		c.Relation.RelationType = RelationComment
		c.Relation.CreatedAt = time.UnixMilli(rCreatedMs).UTC()
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
