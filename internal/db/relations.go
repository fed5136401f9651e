package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// scanRelation scans a row into a Relation. An unrecognized stored type is
// an error, not a silent default.
func scanRelation(scanner interface{ Scan(dest ...any) error }) (Relation, error) {
	var (
		r         Relation
		typ       string
		createdMs int64
	)
	if err := scanner.Scan(&r.ID, &r.SourceNoteID, &r.TargetNoteID, &typ, &createdMs); err != nil {
		return r, err
	}
	parsed, err := ParseRelationType(typ)
	if err != nil {
		return r, fmt.Errorf("relation %d: %w", r.ID, err)
	}
	r.RelationType = parsed
	r.CreatedAt = time.UnixMilli(createdMs).UTC()
	return r, nil
}

// noteExists reports whether a note row is visible to the transaction.
func noteExists(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM notes WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// CreateRelation inserts a typed edge between two existing notes. The
// existence checks and the insert share one immediate transaction, so a
// concurrent delete of an endpoint surfaces as ErrNoteNotFound rather than
// a dangling edge.
func (d *DB) CreateRelation(ctx context.Context, sourceID, targetID int64, typ RelationType) (*Relation, error) {
	if _, err := ParseRelationType(string(typ)); err != nil {
		return nil, err
	}
	createdAt := time.Now().UTC().Truncate(time.Millisecond)

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range []int64{sourceID, targetID} {
		ok, err := noteExists(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("checking note %d: %w", id, err)
		}
		if !ok {
			return nil, ErrNoteNotFound
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO note_relations (source_note_id, target_note_id, relation_type, created_at)
		VALUES (?, ?, ?, ?)
	`, sourceID, targetID, string(typ), createdAt.UnixMilli())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("inserting relation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading relation id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing relation: %w", err)
	}

	return &Relation{
		ID:           id,
		SourceNoteID: sourceID,
		TargetNoteID: targetID,
		RelationType: typ,
		CreatedAt:    createdAt,
	}, nil
}

// RelationsForNote returns the edges targeting a note, oldest first. A
// zero typ returns all types.
func (d *DB) RelationsForNote(ctx context.Context, noteID int64, typ RelationType) ([]Relation, error) {
	query := `
		SELECT id, source_note_id, target_note_id, relation_type, created_at
		FROM note_relations WHERE target_note_id = ?`
	args := []any{noteID}

	if typ != "" {
		if _, err := ParseRelationType(string(typ)); err != nil {
			return nil, err
		}
		query += ` AND relation_type = ?`
		args = append(args, string(typ))
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var relations []Relation
	for rows.Next() {
		r, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		relations = append(relations, r)
	}
	return relations, rows.Err()
}
